package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsing is returned when environment variables cannot be parsed into a config struct.
var ErrParsing = errors.New("failed to parse environment config")

var (
	mu       sync.Mutex
	cache    = map[reflect.Type]any{}
	loadEnvs sync.Once
)

// Load populates cfg from the environment. The first successful load of a type
// is cached, later calls copy the cached value into cfg.
// A .env file in the working directory is read once, if present.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil target", ErrParsing)
	}

	loadEnvs.Do(func() {
		// A missing .env is the common case outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(cfg).Elem()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}

	cache[key] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached config. Intended for tests that tweak the environment.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
