// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"fmt"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// New selects an embedder from config. The hash provider is the
// default so a fresh checkout works with no model server running.
func New(cfg types.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case "", "hash":
		return &HashEmbedder{Dims: cfg.Dimensions}, nil
	case "ollama":
		return NewOllamaEmbedder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
