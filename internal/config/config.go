package config

import (
	"fmt"
	"os"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Backend database and session store
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// Sessions
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads environment variables into AppConfig. DATABASE_URL and
// JWT_SECRET are required; everything else has a development default.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    24 * time.Hour,
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
