package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the defaults the command line starts from. Flags override
// every field.
type Config struct {
	Doors       int    `env:"MONTYHALL_DOORS" envDefault:"3"`
	Simulations int    `env:"MONTYHALL_SIMULATIONS" envDefault:"10000"`
	Workers     int    `env:"MONTYHALL_WORKERS" envDefault:"0"`
	RNG         string `env:"MONTYHALL_RNG" envDefault:"pcg"`
	Seed        uint64 `env:"MONTYHALL_SEED"`
	ServerSeed  string `env:"MONTYHALL_SERVER_SEED"`
	ClientSeed  string `env:"MONTYHALL_CLIENT_SEED"`
	Format      string `env:"MONTYHALL_FORMAT" envDefault:"text"`
	LogLevel    string `env:"MONTYHALL_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional dotenv files into the process environment (without
// overriding variables already set) and parses a Config.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
