package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type WeatherConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type DigestConfig struct {
	// Cron spec with seconds, e.g. "0 0 7 * * *" for 07:00 every day.
	Spec string `yaml:"spec"`
	To   string `yaml:"to"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Client struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"client"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Files struct {
		RootDir string `yaml:"root_dir"`
	} `yaml:"files"`
	Telegram TelegramConfig `yaml:"telegram"`
	Weather  WeatherConfig  `yaml:"weather"`
	Digest   DigestConfig   `yaml:"digest"`
}

func LoadConfig() *Config {
	path := os.Getenv("PLANIFY_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = "http://127.0.0.1:8000"
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.Weather.Latitude == 0 && cfg.Weather.Longitude == 0 {
		cfg.Weather.Latitude = 11.1271
		cfg.Weather.Longitude = 78.6569
	}
	if cfg.Digest.Spec == "" {
		cfg.Digest.Spec = "0 0 7 * * *"
	}
	return &cfg
}
