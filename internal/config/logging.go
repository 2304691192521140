package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sethvargo/go-envconfig"
)

type LogConfig struct {
	Level string `env:"WATCHME_LOG_LEVEL, default=info"`
}

func NewLogConfigFromEnv() (*LogConfig, error) {
	var cfg LogConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SlogLevel parses Level, accepting the names understood by slog
// (debug, info, warn, error).
func (c *LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("invalid WATCHME_LOG_LEVEL %q: %w", c.Level, err)
	}
	return level, nil
}
