package prompt

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/prompt", CreatePrompt)
	router.GET("/prompt/:prompt_id", GetPromptDetail)
	router.PUT("/prompt/:prompt_id", UpdatePrompt)
	router.DELETE("/prompt/:prompt_id", DeletePrompt)
	router.GET("/prompts", ListPrompts)
}
