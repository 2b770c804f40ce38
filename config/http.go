package config

import (
	"errors"
	"fmt"
)

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `json:"addr"`
	// MaxJobs bounds the number of jobs accepted per request. 0 selects
	// DefaultMaxJobs, -1 removes the limit.
	MaxJobs int `json:"max_jobs"`
	// MaxBodyBytes bounds the request body. 0 selects DefaultMaxBodyBytes,
	// -1 removes the limit.
	MaxBodyBytes int64 `json:"max_body_bytes"`
}

// Request limits applied when the configuration leaves them at zero.
const (
	DefaultMaxJobs      = 10000
	DefaultMaxBodyBytes = 8 << 20
)

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxJobs == 0 {
		c.MaxJobs = DefaultMaxJobs
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Validate checks mandatory fields.
func (c HTTPConfig) Validate() error {
	if c.MaxJobs < -1 {
		return errors.New("max_jobs must be positive or -1")
	}
	if c.MaxBodyBytes < -1 {
		return errors.New("max_body_bytes must be positive or -1")
	}
	return nil
}

// RunLogConfig enables the run log when Path is set.
type RunLogConfig struct {
	// Backend is "jsonl" (default) or "sqlite".
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *RunLogConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
}

// Validate checks the backend name.
func (c RunLogConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	return nil
}
