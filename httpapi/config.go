package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config locates the backend API.
type Config struct {
	// BaseURL is the origin the /api routes are mounted on.
	BaseURL string `env:"IDENTKIT_API_BASE_URL, default=http://localhost:8888"`
	// Timeout bounds every collaborator call.
	Timeout time.Duration `env:"IDENTKIT_API_TIMEOUT, default=10s"`
}

// LoadConfig reads the client configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the client cannot dial with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("httpapi: base URL must not be empty")
	}
	if c.Timeout <= 0 {
		return errors.New("httpapi: timeout must be positive")
	}
	return nil
}
