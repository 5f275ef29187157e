// Package cli implements the command line entry points: foreground runs,
// watch mode, the HTTP status server and the graph export. Commands read
// their defaults from the environment and let flags override them.
package cli

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the settings shared by the commands. Values come from
// ESPALIER_* environment variables; command line flags take precedence.
type Config struct {
	Scenario string        `env:"ESPALIER_SCENARIO"`
	Interval time.Duration `env:"ESPALIER_INTERVAL"`
	Ticks    uint64        `env:"ESPALIER_TICKS"`
	Addr     string        `env:"ESPALIER_ADDR" envDefault:":8080"`
	LogLevel string        `env:"ESPALIER_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the environment into a Config. A .env file in the
// working directory is honored when present.
func LoadConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
