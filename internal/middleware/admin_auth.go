package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/worldwonderer/promptdoc/internal/services"
	"github.com/worldwonderer/promptdoc/internal/utils"
	"github.com/worldwonderer/promptdoc/pkg/logger"
)

// AdminSessionCookie carries the opaque session identifier minted at login.
const AdminSessionCookie = "admin_session"

// AdminSession requires a live admin session established through the TOTP
// login. The authenticated flag lives server-side in redis; the cookie only
// holds the session identifier.
func AdminSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(AdminSessionCookie)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Admin login required"))
			c.Abort()
			return
		}

		ok, err := services.CheckAdminSession(sessionID)
		if err != nil {
			logger.Log.Error("failed to check admin session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to verify session"))
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Admin login required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
