package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NormalEdition/Planify/internal/handlers"
)

func SetupRoutes(r *gin.Engine, taskHandler *handlers.TaskHandler) *gin.Engine {
	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.GET("/", taskHandler.List)
		tasks.GET("/level/:level", taskHandler.ListByLevel)
		tasks.POST("/", taskHandler.Create)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	return r
}
