package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	SecretKey string // Required: shared secret for token signing

	AccessTokenTTL  time.Duration // Access token lifetime (default: 30m)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 168h)
	Issuer          string        // Issuer claim for tokens (default: adminapi)

	DatabaseFile   string   // Path to SQLite database file (default: ./database.db)
	PepperFile     string   // Path to password-hashing pepper file (default: ./pepper)
	AllowedOrigins []string // CORS allowed origins

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SecretKey:           os.Getenv("SECRET_KEY"),
		AccessTokenTTL:      getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL:     getEnvDurationOrDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		Issuer:              getEnvOrDefault("TOKEN_ISSUER", "adminapi"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "database.db"),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		AllowedOrigins:      splitOrigins(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Values must carry an explicit unit ("30m", "168h"); a bare number
	// is ambiguous and falls back to the default.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
