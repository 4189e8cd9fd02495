package staticd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/staticd/core/config"
	"github.com/dmitrymomot/staticd/core/server"
)

var (
	ErrInvalidPort = errors.New("port must be between 1 and 65535")
	ErrMissingRoot = errors.New("static root directory is required")
	ErrInvalidRoot = errors.New("static root must be an existing directory")
)

// Config is the full process configuration.
type Config struct {
	Server server.Config

	Env      string `env:"APP_ENV" envDefault:"development"`
	Root     string `env:"STATIC_ROOT" envDefault:"."`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// RootCheckInterval is how often Run re-checks the static root. Zero disables it.
	RootCheckInterval time.Duration `env:"STATIC_ROOT_CHECK_INTERVAL" envDefault:"30s"`
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the process runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// Validate checks values that env parsing alone cannot.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}
	if c.Root == "" {
		return ErrMissingRoot
	}
	return nil
}
