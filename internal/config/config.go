package config

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Config holds the environment-driven settings for the server. Every
// field has a code default; nothing here is required to boot.
type Config struct {
	ServerPort int
	DBPath     string
	LogLevel   string
	GinMode    string
}

// Load reads the configuration from the environment once, at startup.
func Load() *Config {
	return &Config{
		ServerPort: envInt("SERVER_PORT", 8080),
		DBPath:     envString("SQLITE_DB_PATH", "./blogapi.db"),
		LogLevel:   envString("LOG_LEVEL", "info"),
		GinMode:    envString("GIN_MODE", gin.ReleaseMode),
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
