package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer             string        // Optional: issuer claim for tokens (default: listkeeper)
	JWTSecret          string        // Optional: HS256 signing secret; a random one is generated when unset
	AccessTokenTTL     time.Duration // Optional: access token lifetime (default: 30m)
	DatabaseFile       string        // Optional: path to SQLite database file (default: ./todo.db)
	PepperFile         string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	CORSOrigin         string        // Optional: allowed browser origin (default: http://localhost:3000)
	StrictToggleErrors bool          // Optional: make toggle distinguish forbidden from not-found

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:             getEnvOrDefault("TODO_ISSUER", "listkeeper"),
		JWTSecret:          os.Getenv("TODO_JWT_SECRET"),
		AccessTokenTTL:     getEnvDurationOrDefault("TODO_ACCESS_TOKEN_TTL", 30*time.Minute),
		DatabaseFile:       getEnvOrDefault("TODO_DATABASE_FILE", "todo.db"),
		PepperFile:         getEnvOrDefault("TODO_PEPPER_FILE", "pepper"),
		CORSOrigin:         getEnvOrDefault("TODO_CORS_ORIGIN", "http://localhost:3000"),
		StrictToggleErrors: getEnvBoolOrDefault("TODO_STRICT_TOGGLE_ERRORS", false),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
