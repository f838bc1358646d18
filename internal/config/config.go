package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Storage
	StorageType    string
	DatabaseURL    string
	DBPath         string
	MigrationsPath string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Interviews
	StatsCacheTTL        time.Duration
	QuestionCountDefault int

	// Email
	EmailProvider string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
	SMTPFrom      string
	SESRegion     string
	SESFromEmail  string
	SESFromName   string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	cfg := LoadStorage()

	cfg.Port = getEnvOrDefault("PORT", "8080")
	cfg.Env = getEnvOrDefault("ENV", "development")
	cfg.RedisURL = mustGetEnv("REDIS_URL")
	cfg.JWTSecret = mustGetEnv("JWT_SECRET")
	cfg.StatsCacheTTL = time.Duration(getEnvAsIntOrDefault("STATS_CACHE_TTL_SECONDS", 600)) * time.Second
	cfg.QuestionCountDefault = getEnvAsIntOrDefault("QUESTION_COUNT_DEFAULT", 10)
	cfg.EmailProvider = getEnvOrDefault("EMAIL_PROVIDER", "smtp")
	cfg.SMTPHost = getEnvOrDefault("SMTP_HOST", "")
	cfg.SMTPPort = getEnvOrDefault("SMTP_PORT", "587")
	cfg.SMTPUser = getEnvOrDefault("SMTP_USER", "")
	cfg.SMTPPass = getEnvOrDefault("SMTP_PASS", "")
	cfg.SMTPFrom = getEnvOrDefault("SMTP_FROM", "noreply@placementpanic.app")
	cfg.SESRegion = getEnvOrDefault("SES_REGION", "us-east-1")
	cfg.SESFromEmail = getEnvOrDefault("SES_FROM_EMAIL", "")
	cfg.SESFromName = getEnvOrDefault("SES_FROM_NAME", "Placement Panic")
	cfg.FrontendURL = getEnvOrDefault("FRONTEND_URL", "http://localhost:5173")

	return cfg
}

// LoadStorage reads only the storage settings. The admin CLI uses it so it
// can run without Redis or JWT configuration.
func LoadStorage() *Config {
	// Load .env file if it exists
	godotenv.Load()

	storageType := getEnvOrDefault("STORAGE_TYPE", StoragePostgres)

	cfg := &Config{
		StorageType:    storageType,
		DBPath:         getEnvOrDefault("DB_PATH", "./placement-panic.db"),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
	}

	if storageType == StoragePostgres {
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	} else {
		cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", "")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
