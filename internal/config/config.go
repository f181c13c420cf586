package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for export artifacts.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// TranslatorConfig holds settings for the remote translation endpoint.
// The step delays pace the simulated progress checkpoints and exist purely
// for client feedback; set them to zero to disable.
type TranslatorConfig struct {
	BaseURL       string
	Timeout       time.Duration
	StepDelay     time.Duration
	CompleteDelay time.Duration
}

// ExportConfig holds export pipeline settings.
type ExportConfig struct {
	PresignTTL time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables; a .env file can be
// auto-loaded via: _ "github.com/joho/godotenv/autoload".
type AppConfig struct {
	Port       string
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Translator TranslatorConfig
	Export     ExportConfig
}

// Load reads configuration from environment variables. Real environment
// variables take precedence over any .env file.
func Load() *AppConfig {
	return &AppConfig{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "tranzora-exports"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Translator: TranslatorConfig{
			BaseURL:       getEnv("TRANSLATOR_BASE_URL", "http://localhost:3000"),
			Timeout:       getEnvDurationMs("TRANSLATOR_TIMEOUT_MS", 60000),
			StepDelay:     getEnvDurationMs("TRANSLATOR_STEP_DELAY_MS", 800),
			CompleteDelay: getEnvDurationMs("TRANSLATOR_COMPLETE_DELAY_MS", 600),
		},
		Export: ExportConfig{
			PresignTTL: getEnvDurationMs("EXPORT_PRESIGN_TTL_MS", int64(15*time.Minute/time.Millisecond)),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDurationMs(key string, defMs int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(defMs) * time.Millisecond
}
