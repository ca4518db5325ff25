package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/NormalEdition/Planify/internal/config"
	"github.com/NormalEdition/Planify/internal/handlers"
	"github.com/NormalEdition/Planify/internal/models"
	"github.com/NormalEdition/Planify/internal/repositories"
	"github.com/NormalEdition/Planify/internal/routes"
	"github.com/NormalEdition/Planify/internal/scheduler"
	"github.com/NormalEdition/Planify/internal/services"
	"github.com/NormalEdition/Planify/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/NormalEdition/Planify/docs"
)

// Run wires the task store service and blocks serving HTTP.
func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	taskRepo := repositories.NewTaskRepository(db)

	// === Services ===
	taskService := services.NewTaskService(taskRepo)
	digestService := services.NewDigestService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegram, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("Telegram notifier disabled: %v", err)
	}

	// === Handlers ===
	taskHandler := handlers.NewTaskHandler(taskService)

	// === Scheduler (weather poll + daily digest) ===
	weather := utils.NewWeatherClient(cfg.Weather.Latitude, cfg.Weather.Longitude)
	onDigest := func() error {
		ctx := context.Background()
		tasks, err := taskService.GetAll(ctx)
		if err != nil {
			return err
		}
		today := models.Today()
		if cfg.Digest.To != "" {
			if err := digestService.SendDailySummary(cfg.Digest.To, today, tasks); err != nil {
				log.Printf("[digest][email][err] %v", err)
			}
		}
		return telegram.SendAgenda(today, tasks)
	}
	sched := scheduler.NewService(weather, cfg.Digest.Spec, onDigest)
	if err := sched.Start(); err != nil {
		log.Fatal("Failed to start scheduler: ", err)
	}
	defer sched.Stop()

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, taskHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
