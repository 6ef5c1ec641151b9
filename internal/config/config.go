package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NewRelic  NewRelicConfig
	Auth      AuthConfig
	Uploads   UploadsConfig
	Mirror    MirrorConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// DatabaseConfig holds the primary store configuration.
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MongoURI    string
	MongoDB     string
	AutoMigrate bool
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis server is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// AuthConfig holds credential configuration.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// UploadsConfig holds avatar storage configuration.
type UploadsConfig struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

// MirrorConfig holds the demo-trip state configuration.
type MirrorConfig struct {
	Key string
}

// RateLimitConfig holds the per-IP limit applied to auth endpoints.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load loads configuration from environment variables, reading a .env file first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to read .env: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "5000"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", DriverPostgres),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "wanderlust"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:     getEnv("MONGO_DB", "wanderlust"),
			AutoMigrate: getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "wanderlust-api"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:   getDurationEnv("JWT_TTL", 7*24*time.Hour),
			BcryptCost: getIntEnv("BCRYPT_COST", 0),
		},
		Uploads: UploadsConfig{
			Dir:      getEnv("UPLOADS_DIR", "uploads"),
			BaseURL:  getEnv("UPLOADS_BASE_URL", "/uploads"),
			MaxBytes: int64(getIntEnv("UPLOADS_MAX_BYTES", 5<<20)),
		},
		Mirror: MirrorConfig{
			Key: getEnv("MIRROR_KEY", "wanderlust_builtin_state_v1"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloatEnv("AUTH_RATE_LIMIT_RPS", 5),
			Burst: getIntEnv("AUTH_RATE_LIMIT_BURST", 10),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv reads a comma-separated list, dropping blank entries.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
