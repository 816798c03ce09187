package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Verification API the dashboard polls
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:9090/api/dashboard"`
	APIToken   string `envconfig:"API_TOKEN"`

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`
	ListenAddr   string        `envconfig:"LISTEN_ADDR" default:":8080"`
	UseMock      bool          `envconfig:"USE_MOCK"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}
	return &cfg, nil
}
