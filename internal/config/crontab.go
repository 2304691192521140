package config

import (
	"context"

	"github.com/glizzus/watchme/internal/crontab"
	"github.com/sethvargo/go-envconfig"
)

type CrontabConfig struct {
	// User owns the crontab. Empty means the running user.
	User string `env:"WATCHME_CRONTAB_USER"`
	// File switches to a plain crontab file instead of the crontab binary.
	File    string `env:"WATCHME_CRONTAB_FILE"`
	Command string `env:"WATCHME_CRONTAB_COMMAND, default=crontab"`
}

func NewCrontabConfigFromEnv() (*CrontabConfig, error) {
	var cfg CrontabConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Store returns the crontab backend selected by the configuration.
func (c *CrontabConfig) Store() crontab.Store {
	if c.File != "" {
		return crontab.NewFileStore(c.File)
	}
	return crontab.NewCommandStore(c.Command)
}
