package services

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/worldwonderer/promptdoc/internal/database"
)

const (
	adminSessionKeyPrefix = "admin:session:"

	// AdminSessionTTL is the fixed validity window for an admin login.
	AdminSessionTTL = 2 * time.Hour
)

// CreateAdminSession mints a session identifier and stores the authenticated
// flag in redis with a fixed expiry. The identifier goes back to the client
// in a cookie; the flag itself never leaves the server.
func CreateAdminSession() (string, error) {
	sessionID := uuid.New().String()
	key := adminSessionKeyPrefix + sessionID
	if err := database.RedisClient.Set(database.Ctx, key, "1", AdminSessionTTL).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// CheckAdminSession reports whether the session is live. A missing key and
// an expired key are indistinguishable, both mean not authenticated.
func CheckAdminSession(sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	_, err := database.RedisClient.Get(database.Ctx, adminSessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAdminSession invalidates a session on logout.
func DeleteAdminSession(sessionID string) error {
	return database.RedisClient.Del(database.Ctx, adminSessionKeyPrefix+sessionID).Err()
}
