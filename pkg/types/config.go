// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "sourcing-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchProvider identifies the AI search backend.
// Per prd002-search R4.1.
type SearchProvider string

const (
	ProviderClaude SearchProvider = "claude"
	ProviderOpenAI SearchProvider = "openai"
)

// SearchConfig holds settings for the search client adapter.
// Per prd002-search R4.1-R4.4.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the search backend: claude or openai.
	Provider SearchProvider `json:"provider" yaml:"provider"`

	// Model is the AI model identifier (e.g. "claude-sonnet-4-20250514").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the selected provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the retry budget for rate-limited API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the SQLite supplier store.
// Per prd004-supplier-store R1.1.
type StoreConfig struct {
	// DBPath is the path to the SQLite database file
	// (default "data/fluxgen.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ResearchConfig holds settings for the research queue manager.
// Per prd001-research-queue R2.1, R2.4.
type ResearchConfig struct {
	// BatchSize is the maximum number of due items processed per run
	// (default 5).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// MaxSuppliersPerItem caps the search results requested and
	// processed for one item (default 5).
	MaxSuppliersPerItem int `json:"max_suppliers_per_item" yaml:"max_suppliers_per_item"`
}
