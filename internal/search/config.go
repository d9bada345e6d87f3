package search

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Config holds search cluster connection settings. Either a hosted cluster
// (CloudID + APIKey) or a traditional address list with basic auth.
type Config struct {
	Enabled bool `yaml:"enabled"`

	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`

	CloudID string `yaml:"cloud_id"`
	APIKey  string `yaml:"api_key"`

	// Index names are built as {prefix}-{entity}-{suffix}.
	IndexPrefix string `yaml:"index_prefix"`
	IndexSuffix string `yaml:"index_suffix"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`

	// Transport overrides the HTTP transport, used by tests.
	Transport http.RoundTripper `yaml:"-"`
}

// ApplyDefaults fills zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if len(c.Addresses) == 0 && c.CloudID == "" {
		c.Addresses = []string{"http://localhost:9200"}
	}
	if c.IndexPrefix == "" {
		c.IndexPrefix = "ems"
	}
	if c.IndexSuffix == "" {
		c.IndexSuffix = "prod"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SEARCH_ENABLED"); v != "" {
		c.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("SEARCH_ADDRESSES"); v != "" {
		c.Addresses = strings.Split(v, ",")
	}
	if v := os.Getenv("SEARCH_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("SEARCH_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("SEARCH_CLOUD_ID"); v != "" {
		c.CloudID = v
	}
	if v := os.Getenv("SEARCH_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("SEARCH_INDEX_SUFFIX"); v != "" {
		c.IndexSuffix = v
	}
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.CloudID != "" && c.APIKey == "" {
		return fmt.Errorf("search: cloud_id requires api_key")
	}
	if c.CloudID == "" && len(c.Addresses) == 0 {
		return fmt.Errorf("search: addresses or cloud_id required when enabled")
	}
	if c.IndexPrefix == "" || c.IndexSuffix == "" {
		return fmt.Errorf("search: index_prefix and index_suffix are required")
	}
	return nil
}
