package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Storage
	StorageDriver string
	DataDir       string
	DatabaseURL   string

	// Auth
	JWTSecret          string
	JWTTTL             time.Duration
	SchedulerToken     string
	LoginRatePerMinute int

	// Recurring engine
	Recurring RecurringConfig

	// S3 Storage for backups
	S3 S3Config
}

// RecurringConfig holds the recurring sweep settings
type RecurringConfig struct {
	WorkerEnabled bool
	Interval      time.Duration
	CatchUp       bool
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether backups to S3 are configured
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment without reading .env
func FromEnv() (*Config, error) {
	jwtTTL, err := getDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	interval, err := getDuration("RECURRING_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	workerEnabled, err := getBool("RECURRING_WORKER_ENABLED", true)
	if err != nil {
		return nil, err
	}
	catchUp, err := getBool("RECURRING_CATCH_UP", false)
	if err != nil {
		return nil, err
	}
	loginRate, err := getInt("LOGIN_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
		Env:                getEnv("ENV", "development"),
		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		DataDir:            getEnv("DATA_DIR", "./data"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             jwtTTL,
		SchedulerToken:     getEnv("SCHEDULER_TOKEN", ""),
		LoginRatePerMinute: loginRate,
		Recurring: RecurringConfig{
			WorkerEnabled: workerEnabled,
			Interval:      interval,
			CatchUp:       catchUp,
		},
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file storage driver")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageFile, StoragePostgres)
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is required and must be at least 32 bytes")
	}
	if c.Recurring.Interval < time.Minute {
		return fmt.Errorf("RECURRING_INTERVAL must be at least 1m")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
