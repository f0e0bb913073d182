// Package config holds runtime configuration for the in-memory store.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds all tunables for a store instance. Every field has an
// environment binding so the example binary and tests can steer it without
// code changes.
type Config struct {
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `env:"FIRESTORE_FAKE_LOG_LEVEL" envDefault:"info"`
	// LogFormat selects the log output format, "text" or "json".
	LogFormat string `env:"FIRESTORE_FAKE_LOG_FORMAT" envDefault:"text"`
	// ListenerBuffer is the channel buffer size for snapshot listeners.
	// Events beyond a full buffer are dropped for that listener.
	ListenerBuffer int `env:"FIRESTORE_FAKE_LISTENER_BUFFER" envDefault:"16"`
	// AutoIDLength is the length of generated document IDs, minimum 20.
	AutoIDLength int `env:"FIRESTORE_FAKE_AUTO_ID_LENGTH" envDefault:"20"`
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("loading store configuration from environment: %w", err)
	}
	cfg.applyBounds()
	return cfg, nil
}

// Default returns the built-in defaults without touching the environment.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		ListenerBuffer: 16,
		AutoIDLength:   20,
	}
}

func (c *Config) applyBounds() {
	if c.ListenerBuffer <= 0 {
		c.ListenerBuffer = 16
	}
	if c.AutoIDLength < 20 {
		c.AutoIDLength = 20
	}
}
