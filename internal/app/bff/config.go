package bff

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries environment-driven settings for the BFF process.
type Config struct {
	Port            string
	APIURL          string
	Development     bool
	ViteURL         string
	StaticDir       string
	PostgresDSN     string
	SessionTTL      time.Duration
	UpstreamTimeout time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            envDefault("PORT", "5173"),
		APIURL:          envDefault("API_URL", "http://localhost:8080"),
		Development:     strings.EqualFold(envDefault("ENVIRONMENT", "production"), "development"),
		ViteURL:         envDefault("VITE_DEV_SERVER_URL", "http://localhost:5174"),
		StaticDir:       envDefault("STATIC_DIR", "client/dist"),
		PostgresDSN:     strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SessionTTL:      24 * time.Hour,
		UpstreamTimeout: 10 * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer")
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	if raw := strings.TrimSpace(os.Getenv("UPSTREAM_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.UpstreamTimeout = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
