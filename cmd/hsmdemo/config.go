package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the run time configuration of hsmdemo, read from the environment.
type Config struct {
	LogLevel    string `env:"LOGGING_LEVEL" envDefault:"INFO"`
	LogFormat   string `env:"LOGGING_FORMAT" envDefault:"CONSOLE"`
	MetricsAddr string `env:"HSM_METRICS_ADDR"`
}

// loadConfig parses the environment into a Config. Variables from envFile, when given, are loaded first without
// overriding the ones already set.
func loadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("loading env file %q: %w", envFile, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
