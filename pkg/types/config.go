// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ResearchConfig holds tunables for a single research run.
type ResearchConfig struct {
	// MaxDepth bounds the number of gap-driven refinement rounds
	// (default 3). The refinement loop always terminates at this depth
	// regardless of remaining gaps.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// PerQueryLimit is the number of candidates requested from each
	// (query, collection) search (default 5).
	PerQueryLimit int `json:"per_query_limit" yaml:"per_query_limit"`

	// PoolCap caps the reranked finding pool handed to synthesis
	// (default 30). Findings beyond the cap are retained in an overflow
	// but excluded from synthesis.
	PoolCap int `json:"pool_cap" yaml:"pool_cap"`

	// OverallTimeout bounds the whole run (default 20s). On expiry the
	// pipeline returns partial results flagged as truncated.
	OverallTimeout time.Duration `json:"overall_timeout" yaml:"overall_timeout"`

	// SearchTimeout bounds each embedding or index call (default 60s).
	// A timed-out search is skipped, not fatal.
	SearchTimeout time.Duration `json:"search_timeout" yaml:"search_timeout"`

	// MaxInFlight bounds concurrent (query, collection) searches
	// (default 5).
	MaxInFlight int `json:"max_in_flight" yaml:"max_in_flight"`

	// Collections lists the named document pools to search.
	Collections []string `json:"collections" yaml:"collections"`
}

// DefaultCollections are the document pools a standard installation
// indexes.
var DefaultCollections = []string{"principles", "reference-documents", "materials", "historical-resolutions"}

// WithDefaults fills zero fields with the standard values.
func (c ResearchConfig) WithDefaults() ResearchConfig {
	if c.MaxDepth <= 0 {
		c.MaxDepth = 3
	}
	if c.PerQueryLimit <= 0 {
		c.PerQueryLimit = 5
	}
	if c.PoolCap <= 0 {
		c.PoolCap = 30
	}
	if c.OverallTimeout <= 0 {
		c.OverallTimeout = 20 * time.Second
	}
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = 60 * time.Second
	}
	if c.MaxInFlight <= 0 {
		c.MaxInFlight = 5
	}
	if len(c.Collections) == 0 {
		c.Collections = DefaultCollections
	}
	return c
}

// EmbeddingConfig holds settings for the embedding provider.
type EmbeddingConfig struct {
	// Provider selects the embedder: "hash" (offline, deterministic)
	// or "ollama".
	Provider string `json:"provider" yaml:"provider"`

	// OllamaHost is the Ollama base URL (default http://localhost:11434).
	OllamaHost string `json:"ollama_host" yaml:"ollama_host"`

	// Model is the Ollama embedding model (default nomic-embed-text).
	Model string `json:"model" yaml:"model"`

	// Dimensions is the vector length (default 768, matching
	// nomic-embed-text).
	Dimensions int `json:"dimensions" yaml:"dimensions"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// VectorConfig holds settings for the local vector index.
type VectorConfig struct {
	// Path is the SQLite database file holding the collections.
	Path string `json:"path" yaml:"path"`
}

// MaterialsConfig holds settings for the materials database.
type MaterialsConfig struct {
	// Path is the SQLite database file holding the materials table.
	Path string `json:"path" yaml:"path"`
}

// SessionConfig holds settings for session persistence.
type SessionConfig struct {
	// StorageDir is the directory for session JSON files.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// CleanupDays is the age after which sessions are removed by
	// cleanup (default 30).
	CleanupDays int `json:"cleanup_days" yaml:"cleanup_days"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Research  ResearchConfig  `json:"research" yaml:"research"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Vector    VectorConfig    `json:"vector" yaml:"vector"`
	Materials MaterialsConfig `json:"materials" yaml:"materials"`
	Session   SessionConfig   `json:"session" yaml:"session"`
}
