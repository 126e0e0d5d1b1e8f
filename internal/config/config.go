package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL  = "http://localhost:8080/api"
	defaultStateDB     = "moviedeck_state.db"
	defaultHTTPTimeout = "15s"

	defaultPort       = "8080"
	defaultDatabase   = "moviedeck.db"
	defaultJWTSecret  = "change-me-jwt-secret"
	defaultTokenTTL   = "24h"
	defaultRateLimit  = "5"
	defaultRateLimitB = "10"
)

// Client is the configuration of the client state layer.
type Client struct {
	APIBaseURL  string
	StateDB     string
	HTTPTimeout time.Duration
}

// Server is the configuration of the reference backend.
type Server struct {
	AppEnv    string
	Port      string
	Database  string
	JWTSecret string
	TokenTTL  time.Duration
	RateLimit float64
	RateBurst int
}

// LoadClient reads client configuration from the environment, loading .env
// first when present.
func LoadClient() (*Client, error) {
	_ = godotenv.Load()

	cfg := &Client{
		APIBaseURL: strings.TrimSpace(getEnv("MOVIEDECK_API_URL", defaultAPIBaseURL)),
		StateDB:    strings.TrimSpace(getEnv("MOVIEDECK_STATE_DB", defaultStateDB)),
	}

	timeout, err := parseDurationEnv("MOVIEDECK_HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("MOVIEDECK_API_URL must not be empty")
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("MOVIEDECK_HTTP_TIMEOUT must be > 0")
	}
	return cfg, nil
}

// LoadServer reads backend configuration from the environment, loading .env
// first when present.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	cfg := &Server{
		AppEnv:    strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev"))),
		Port:      strings.TrimSpace(getEnv("PORT", defaultPort)),
		Database:  strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabase)),
		JWTSecret: strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
	}

	ttl, err := parseDurationEnv("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	var limit float64
	if _, err := fmt.Sscanf(getEnv("RATE_LIMIT", defaultRateLimit), "%f", &limit); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	cfg.RateLimit = limit

	var burst int
	if _, err := fmt.Sscanf(getEnv("RATE_BURST", defaultRateLimitB), "%d", &burst); err != nil {
		return nil, fmt.Errorf("invalid RATE_BURST: %w", err)
	}
	cfg.RateBurst = burst

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be > 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("in prod JWT_SECRET must be set and not default")
	}
	return cfg, nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
