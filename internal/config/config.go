package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPTimeout  = 15 * time.Second
	defaultCrewCapacity = 3
	defaultRequestRate  = 20
	defaultTokenStore   = ".cravings/tokens.json"
)

type Config struct {
	APIBaseURL     string
	HTTPTimeout    time.Duration
	TokenStorePath string
	CrewCapacity   int
	RequestRate    float64
	AppEnv         string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		HTTPTimeout:    defaultHTTPTimeout,
		TokenStorePath: os.Getenv("TOKEN_STORE_PATH"),
		CrewCapacity:   defaultCrewCapacity,
		RequestRate:    defaultRequestRate,
		AppEnv:         os.Getenv("APP_ENV"),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("Environment variables not loaded properly: API_BASE_URL is required")
	}

	if cfg.TokenStorePath == "" {
		cfg.TokenStorePath = defaultTokenStore
	}

	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("CREW_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CrewCapacity = n
		}
	}

	if v := os.Getenv("REQUEST_RATE"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r > 0 {
			cfg.RequestRate = r
		}
	}

	return cfg
}
