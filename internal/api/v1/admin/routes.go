package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/worldwonderer/promptdoc/config"
	"github.com/worldwonderer/promptdoc/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config) {
	router.POST("/login", Login(cfg))
	router.POST("/logout", Logout)

	protected := router.Group("/")
	protected.Use(middleware.AdminSession())
	{
		protected.GET("/prompts", ListPrompts)
		protected.POST("/prompts", CreatePrompt)
		protected.GET("/prompts/:prompt_id", PromptDetail)
		protected.POST("/prompts/:prompt_id/edit", EditPrompt)
		protected.POST("/prompts/:prompt_id/delete", DeletePrompt)
	}
}
