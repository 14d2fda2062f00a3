package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"API_BASE_URL", "API_TIMEOUT", "SERVER_PORT", "SESSION_STORE", "PAGE_LIMIT", "USERS_PAGE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, SessionStoreBolt, cfg.SessionStore)
	assert.Equal(t, 10, cfg.PageLimit)
	assert.Equal(t, 5, cfg.UsersPageSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", "https://quiz.example.com/api/")
	t.Setenv("API_TIMEOUT", "15")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PAGE_LIMIT", "25")
	t.Setenv("USERS_PAGE_SIZE", "-1")

	cfg := Load()
	assert.Equal(t, "https://quiz.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 25, cfg.PageLimit)
	assert.Equal(t, 5, cfg.UsersPageSize)
}
