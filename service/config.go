package service

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains the portal's configuration, loaded from the environment.
type Config struct {
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	Port          string `env:"PORT" envDefault:"8000"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"development-secret"`

	Supabase Supabase `envPrefix:"SUPABASE_"`
}

// Supabase identifies the hosted project. The values are not validated
// here; a wrong URL or key fails downstream with the service's own error.
type Supabase struct {
	URL     string `env:"URL" envDefault:"http://localhost:54321"`
	AnonKey string `env:"ANON_KEY"`
}

// LoadConfig parses configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
