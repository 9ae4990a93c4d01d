// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration for the service. It is read once at
// startup and never mutated afterwards.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// Object storage (S3-compatible: NCP Object Storage in production, MinIO locally)
	StorageDriver     string
	StorageEndpoint   string
	StorageRegion     string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageBaseFolder string
	StorageUseSSL     bool
	StoragePublicBase string // optional CDN/base URL, e.g. "https://cdn.example.com"

	// Image optimizer URL template inputs
	OptimizerDomain    string
	OptimizerProjectID string
	OptimizerQuery     string

	AllowedOrigins []string
	MaxUploadBytes int64
	UploadTimeout  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading from environment")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageDriver:     getEnv("STORAGE_DRIVER", "minio"),
		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "https://kr.object.ncloudstorage.com"),
		StorageRegion:     getEnv("STORAGE_REGION", "kr-standard"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", ""),
		StorageBaseFolder: strings.Trim(getEnv("STORAGE_BASE_FOLDER", "original"), "/"),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "true") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", ""),

		OptimizerDomain:    strings.TrimRight(getEnv("OPTIMIZER_DOMAIN", ""), "/"),
		OptimizerProjectID: getEnv("OPTIMIZER_PROJECT_ID", ""),
		OptimizerQuery:     getEnv("OPTIMIZER_QUERY", ""),

		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.MaxUploadBytes, err = parseInt64Env("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return nil, err
	}
	if cfg.UploadTimeout, err = parseDurationEnv("UPLOAD_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = parseFloatEnv("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	burst, err := parseInt64Env("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst = int(burst)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing settings that would make every upload fail.
func (c *Config) Validate() error {
	var errs []error
	if c.StorageBucket == "" {
		errs = append(errs, errors.New("STORAGE_BUCKET is required"))
	}
	if c.StorageDriver != "memory" {
		if c.StorageEndpoint == "" {
			errs = append(errs, errors.New("STORAGE_ENDPOINT is required"))
		}
		if c.StorageAccessKey == "" || c.StorageSecretKey == "" {
			errs = append(errs, errors.New("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required"))
		}
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseInt64Env(key string, def int64) (int64, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, val)
	}
	return n, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, val)
	}
	return f, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, val)
	}
	return d, nil
}
