package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/worldwonderer/promptdoc/config"
	"github.com/worldwonderer/promptdoc/internal/utils"
	"github.com/worldwonderer/promptdoc/pkg/logger"
)

// APIToken guards the JSON API with the shared bearer secret. A missing
// header, a wrong scheme and a wrong token all produce the same 401 body, so
// a probing client learns nothing about which part failed. When no secret is
// configured the gate fails closed with 503 for every request, valid
// credential or not.
func APIToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := cfg.AuthToken()
		if !ok {
			logger.Log.Error("rejecting request: AUTH_TOKEN is not configured")
			c.JSON(http.StatusServiceUnavailable,
				utils.NewErrorResponse("Server authentication token is not configured"))
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		expected := "Bearer " + token
		if subtle.ConstantTimeCompare([]byte(header), []byte(expected)) != 1 {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
			c.Abort()
			return
		}

		c.Next()
	}
}
