package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the engine tunables read from the yaml config file. All
// durations are strings in time.ParseDuration format.
type Config struct {
	Engine struct {
		PollInterval   string `yaml:"poll_interval"`
		RequestTimeout string `yaml:"request_timeout"`
	} `yaml:"engine"`
}

// EngineConfig is the parsed form of Config.
type EngineConfig struct {
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

func defaultEngineConfig() EngineConfig {
	return EngineConfig{
		PollInterval:   2 * time.Second,
		RequestTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig reads the yaml config file. A missing file yields defaults.
func loadConfig(path string) (EngineConfig, error) {
	cfg := defaultEngineConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.Engine.PollInterval != "" {
		d, err := time.ParseDuration(raw.Engine.PollInterval)
		if err != nil {
			return cfg, fmt.Errorf("invalid poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if raw.Engine.RequestTimeout != "" {
		d, err := time.ParseDuration(raw.Engine.RequestTimeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}
