// Package config loads runtime settings from the environment and the
// embedded listing tuning file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Row source backends selectable through ROW_SOURCE.
const (
	RowSourcePostgres = "postgres"
	RowSourceSQLite   = "sqlite"
)

const defaultOrigin = "http://localhost:3000"

// Config is the process configuration of the API server and tools.
type Config struct {
	Port         string
	DatabaseURL  string
	RowSource    string
	SQLitePath   string
	CORSOrigins  []string
	Location     *time.Location
	LogLevel     string
	Env          string
	SiteURL      string
	ListingsPath string
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8081"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RowSource:    strings.ToLower(getEnv("ROW_SOURCE", RowSourcePostgres)),
		SQLitePath:   getEnv("SQLITE_PATH", "infortic.db"),
		CORSOrigins:  []string{defaultOrigin},
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Env:          getEnv("APP_ENV", "production"),
		SiteURL:      strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		ListingsPath: os.Getenv("LISTINGS_CONFIG"),
	}

	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	loc, err := time.LoadLocation(getEnv("APP_TZ", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("load APP_TZ: %w", err)
	}
	cfg.Location = loc

	switch cfg.RowSource {
	case RowSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when ROW_SOURCE=%s", RowSourcePostgres)
		}
	case RowSourceSQLite:
	default:
		return nil, fmt.Errorf("unknown ROW_SOURCE %q", cfg.RowSource)
	}

	return cfg, nil
}

// Development reports whether the process runs in a development environment.
func (c *Config) Development() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
