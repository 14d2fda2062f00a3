package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store drivers accepted by SESSION_STORE.
const (
	SessionStoreBolt   = "bolt"
	SessionStoreRedis  = "redis"
	SessionStoreMySQL  = "mysql"
	SessionStoreMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string
	APITimeout    time.Duration
	ServerPort    string
	SessionStore  string
	SessionPath   string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	PageLimit     int
	UsersPageSize int
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	return &Config{
		APIBaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		APITimeout:    getEnvDuration("API_TIMEOUT", 0),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", SessionStoreBolt)),
		SessionPath:   getEnv("SESSION_PATH", "data/session.db"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		PageLimit:     getEnvInt("PAGE_LIMIT", 10),
		UsersPageSize: getEnvInt("USERS_PAGE_SIZE", 5),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("30s") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if parsed, err := time.ParseDuration(v); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return def
}
