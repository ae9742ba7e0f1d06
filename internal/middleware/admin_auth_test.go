package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/worldwonderer/promptdoc/internal/database"
	"github.com/worldwonderer/promptdoc/internal/services"
	"github.com/worldwonderer/promptdoc/pkg/logger"
)

func setupMockRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr
}

func newAdminTestRouter() *gin.Engine {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin/ping", AdminSession(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func TestAdminSessionMiddleware(t *testing.T) {
	mr := setupMockRedis()
	defer mr.Close()

	router := newAdminTestRouter()

	t.Run("No Cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/ping", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Admin login required"}`, w.Body.String())
	})

	t.Run("Unknown Session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/ping", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "bogus"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Live Session", func(t *testing.T) {
		sessionID, err := services.CreateAdminSession()
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/ping", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: sessionID})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Redis Unavailable", func(t *testing.T) {
		broken := setupMockRedis()
		broken.Close()
		defer func() { database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()}) }()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/ping", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "any"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to verify session"}`, w.Body.String())
	})

	t.Run("Expired Session", func(t *testing.T) {
		sessionID, err := services.CreateAdminSession()
		assert.NoError(t, err)

		mr.FastForward(services.AdminSessionTTL + 1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/ping", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: sessionID})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
