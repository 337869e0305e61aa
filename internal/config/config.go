package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	StaticDir string

	DatabasePath string
	LogDirectory string

	DetectAPIURL string
	DetectAPIKey string

	SensorInterval     int // seconds between simulated readings
	ReadingBufferLimit int
	ReadingFlushSecs   int
	RetentionDays      int
	CleanupSchedule    string // cron spec for the retention job
}

func Load() *Config {
	// .env is optional, real env vars win either way
	_ = godotenv.Load()

	return &Config{
		Port:               getEnvAsInt("PORT", 8080),
		StaticDir:          getEnv("STATIC_DIR", filepath.Join(".", "static")),
		DatabasePath:       getEnv("DB_PATH", filepath.Join(".", "data", "telemetry.db")),
		LogDirectory:       getEnv("LOG_DIR", filepath.Join(".", "logs")),
		DetectAPIURL:       getEnv("DETECT_API_URL", "https://serverless.roboflow.com/infer/workflows/poultry-dashboard/classify-poultry-disease"),
		DetectAPIKey:       getEnv("DETECT_API_KEY", "qF3kZ8pWvYxN5tRbH2Lm"),
		SensorInterval:     getEnvAsInt("SENSOR_INTERVAL", 3),
		ReadingBufferLimit: getEnvAsInt("READING_BUFFER_LIMIT", 50),
		ReadingFlushSecs:   getEnvAsInt("READING_FLUSH_INTERVAL", 15),
		RetentionDays:      getEnvAsInt("RETENTION_DAYS", 14),
		CleanupSchedule:    getEnv("CLEANUP_SCHEDULE", "30 3 * * *"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
