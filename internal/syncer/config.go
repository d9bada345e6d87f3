package syncer

import (
	"fmt"
	"time"
)

// Config holds sync orchestrator tunables.
type Config struct {
	// PageSize is the batch size for full-reindex paging.
	PageSize int `yaml:"page_size"`
	// IncrementalWindow bounds how far back a default incremental sync
	// reaches when no prior sync time is known.
	IncrementalWindow time.Duration `yaml:"incremental_window"`
	// OrphanPageSize is the scroll page size for orphan cleanup listings.
	OrphanPageSize int `yaml:"orphan_page_size"`
	// EnrichmentTTL is how long the live single-document path reuses
	// cached lookup maps before reloading them.
	EnrichmentTTL time.Duration `yaml:"enrichment_ttl"`
	// MaxStatusErrors caps the error list in Status snapshots.
	MaxStatusErrors int `yaml:"max_status_errors"`
}

// ApplyDefaults fills zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = 500
	}
	if c.IncrementalWindow == 0 {
		c.IncrementalWindow = time.Hour
	}
	if c.OrphanPageSize == 0 {
		c.OrphanPageSize = 1000
	}
	if c.EnrichmentTTL == 0 {
		c.EnrichmentTTL = time.Minute
	}
	if c.MaxStatusErrors == 0 {
		c.MaxStatusErrors = 10
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("sync page_size must be positive")
	}
	if c.OrphanPageSize < 1 {
		return fmt.Errorf("sync orphan_page_size must be positive")
	}
	return nil
}

// SchedulerConfig holds the periodic trigger intervals.
type SchedulerConfig struct {
	Enabled bool `yaml:"enabled"`
	// FullInterval triggers a full reindex.
	FullInterval time.Duration `yaml:"full_interval"`
	// IncrementalInterval triggers an incremental sync.
	IncrementalInterval time.Duration `yaml:"incremental_interval"`
	// OptimizeInterval triggers index optimization.
	OptimizeInterval time.Duration `yaml:"optimize_interval"`
	// CleanupInterval triggers orphan cleanup. This is the most expensive
	// operation and runs on its own, much longer schedule.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ApplyDefaults fills zero values with sensible defaults.
func (c *SchedulerConfig) ApplyDefaults() {
	if c.FullInterval == 0 {
		c.FullInterval = 24 * time.Hour
	}
	if c.IncrementalInterval == 0 {
		c.IncrementalInterval = 5 * time.Minute
	}
	if c.OptimizeInterval == 0 {
		c.OptimizeInterval = 24 * time.Hour
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = 7 * 24 * time.Hour
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *SchedulerConfig) ApplyEnvOverrides() {}

// Validate returns an error if the configuration is invalid.
func (c *SchedulerConfig) Validate() error { return nil }
