// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "softscan/0.1 (mailto:curator@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScanConfig holds settings for the batch scan stage.
type ScanConfig struct {
	HTTPConfig `yaml:",inline"`

	// FetchDelay is the minimum interval between consecutive full-text
	// fetches, honoring the upstream rate-limit intent (default 200ms).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// Concurrency is the number of items processed in parallel (1..5,
	// default 1). Pacing applies across all workers.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// MaxBatch is the identifier cap enforced by the caller before a
	// batch reaches the core (default 20).
	MaxBatch int `json:"max_batch" yaml:"max_batch"`
}

// StoreConfig holds settings for the optional scan-run history database.
type StoreConfig struct {
	// DBPath is the SQLite database file for saved runs.
	DBPath string `json:"db_path" yaml:"db_path"`
}
