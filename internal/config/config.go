package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	ModelPath       string
	ClassNamesPath  string
	UploadDirectory string
	OutputDirectory string
	TemplatePath    string
	LogDirectory    string
	DetectorWorkers int // Number of loaded model instances (1 = serialized inference)
	RetentionTTL    int // Hours to keep uploads and run directories (0 = keep forever)
	JanitorInterval int // Minutes between retention sweeps
}

func Load() *Config {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnvAsInt("PORT", 8080),
		ModelPath:       getEnv("MODEL_PATH", filepath.Join("model", "best.onnx")),
		ClassNamesPath:  getEnv("CLASS_NAMES_PATH", filepath.Join("model", "classes.txt")),
		UploadDirectory: getEnv("UPLOAD_DIR", "uploads"),
		OutputDirectory: getEnv("OUTPUT_DIR", "outputs"),
		TemplatePath:    getEnv("TEMPLATE_PATH", filepath.Join("templates", "index.html")),
		LogDirectory:    getEnv("LOG_DIR", filepath.Join(".", "logs")),
		DetectorWorkers: getEnvAsInt("DETECTOR_WORKERS", 1),
		RetentionTTL:    getEnvAsInt("RETENTION_TTL_HOURS", 0),
		JanitorInterval: getEnvAsInt("JANITOR_INTERVAL_MINUTES", 10),
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
