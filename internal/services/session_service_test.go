package services

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"github.com/worldwonderer/promptdoc/internal/database"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func TestAdminSessionLifecycle(t *testing.T) {
	mr := setupTestRedis(t)
	defer mr.Close()

	sessionID, err := CreateAdminSession()
	assert.NoError(t, err)
	assert.NotEmpty(t, sessionID)

	ok, err := CheckAdminSession(sessionID)
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, DeleteAdminSession(sessionID))

	ok, err = CheckAdminSession(sessionID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckAdminSessionUnknownOrEmpty(t *testing.T) {
	mr := setupTestRedis(t)
	defer mr.Close()

	ok, err := CheckAdminSession("")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = CheckAdminSession("nope")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminSessionExpires(t *testing.T) {
	mr := setupTestRedis(t)
	defer mr.Close()

	sessionID, err := CreateAdminSession()
	assert.NoError(t, err)

	mr.FastForward(AdminSessionTTL + 1)

	ok, err := CheckAdminSession(sessionID)
	assert.NoError(t, err)
	assert.False(t, ok)
}
