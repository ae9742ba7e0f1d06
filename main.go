package main

import (
	"log"

	"github.com/worldwonderer/promptdoc/config"
	"github.com/worldwonderer/promptdoc/internal/api"
	"github.com/worldwonderer/promptdoc/internal/database"
	"github.com/worldwonderer/promptdoc/internal/models"
	"github.com/worldwonderer/promptdoc/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	if err := database.DB.AutoMigrate(&models.Prompt{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if _, ok := cfg.AuthToken(); !ok {
		logger.Log.Warn("AUTH_TOKEN is not configured; all API requests will be rejected")
	}
	if _, ok := cfg.AdminSecret(); !ok {
		logger.Log.Warn("ADMIN_TOTP_SECRET is not configured; admin login is disabled")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
