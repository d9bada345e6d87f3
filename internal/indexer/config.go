package indexer

import "time"

// Config holds tunables for the single-document path and the retry queue.
type Config struct {
	// RequestTimeout bounds each index-cluster call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RetryQueueSize caps the in-memory retry queue.
	RetryQueueSize int `yaml:"retry_queue_size"`
	// RetryFlushInterval is the delay between retry flush ticks.
	RetryFlushInterval time.Duration `yaml:"retry_flush_interval"`
	// RetryFlushBatch is the max items retried per tick.
	RetryFlushBatch int `yaml:"retry_flush_batch"`
	// MaxRetryAttempts drops an item after this many failed retries.
	MaxRetryAttempts int `yaml:"max_retry_attempts"`
}

// ApplyDefaults fills zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.RetryQueueSize == 0 {
		c.RetryQueueSize = 1000
	}
	if c.RetryFlushInterval == 0 {
		c.RetryFlushInterval = 30 * time.Second
	}
	if c.RetryFlushBatch == 0 {
		c.RetryFlushBatch = 100
	}
	if c.MaxRetryAttempts == 0 {
		c.MaxRetryAttempts = 5
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error { return nil }
