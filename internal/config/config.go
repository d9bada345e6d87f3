// Package config assembles the application configuration from YAML files
// and environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/events"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/syncer"
)

// ServiceConfig defines the standard configuration lifecycle methods.
// Each component config implements this to keep configuration handling
// uniform across the application.
type ServiceConfig interface {
	// ApplyDefaults fills zero values with sensible defaults.
	ApplyDefaults()
	// ApplyEnvOverrides applies environment variable overrides.
	ApplyEnvOverrides()
	// Validate returns an error if the configuration is invalid.
	Validate() error
}

// Config holds the application configuration.
type Config struct {
	Logging   LoggingConfig          `yaml:"logging"`
	Database  store.Config           `yaml:"database"`
	Search    search.Config          `yaml:"search"`
	Indexer   indexer.Config         `yaml:"indexer"`
	Sync      syncer.Config          `yaml:"sync"`
	Scheduler syncer.SchedulerConfig `yaml:"scheduler"`
	Events    events.Config          `yaml:"events"`
}

// LoadConfig loads configuration in layers: defaults, config/config.yml,
// config/config.local.yml, then environment overrides, then validation.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := loadFile("config/config.yml", cfg); err != nil {
		return nil, err
	}
	if err := loadFile("config/config.local.yml", cfg); err != nil {
		return nil, err
	}

	if err := applyLifecycle(
		&cfg.Logging,
		&cfg.Database,
		&cfg.Search,
		&cfg.Indexer,
		&cfg.Sync,
		&cfg.Scheduler,
		&cfg.Events,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyLifecycle(configs ...ServiceConfig) error {
	for _, c := range configs {
		c.ApplyDefaults()
		c.ApplyEnvOverrides()
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	return nil
}
