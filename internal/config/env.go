package config

import (
	"fmt"

	"github.com/aretw0/herald"
	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the process configuration from the environment.
func Load() (herald.Config, error) {
	var cfg herald.Config
	if err := ParseEnv(&cfg); err != nil {
		return herald.Config{}, err
	}
	return cfg, nil
}
