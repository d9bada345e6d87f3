package events

import (
	"fmt"
	"os"

	"github.com/nats-io/nats.go"
)

// Config holds the change-event transport settings.
type Config struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
	QueueGroup    string `yaml:"queue_group"`
}

// ApplyDefaults fills in default values.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = nats.DefaultURL
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = "entities.changed"
	}
	if c.QueueGroup == "" {
		c.QueueGroup = "searchsync"
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("NATS_URL"); v != "" {
		c.URL = v
	}
	if v := os.Getenv("EVENTS_ENABLED"); v != "" {
		c.Enabled = v == "true" || v == "1"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Enabled && c.URL == "" {
		return fmt.Errorf("events: url is required when enabled")
	}
	return nil
}
