package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/worldwonderer/promptdoc/config"
	"github.com/worldwonderer/promptdoc/internal/api/v1/admin"
	"github.com/worldwonderer/promptdoc/internal/api/v1/prompt"
	"github.com/worldwonderer/promptdoc/internal/database"
	"github.com/worldwonderer/promptdoc/internal/middleware"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if _, err = database.Connect(cfg.DBPath); err != nil {
		return nil, err
	}

	if err = database.ConnectRedis(cfg); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	// Token-protected JSON API
	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.APIToken(cfg))
	{
		prompt.RegisterRoutes(apiGroup)
	}

	// TOTP/session-protected admin surface
	adminGroup := router.Group("/admin")
	{
		admin.RegisterRoutes(adminGroup, cfg)
	}

	return router, nil
}
