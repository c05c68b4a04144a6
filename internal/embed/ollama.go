// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/triz-copilot/internal/httputil"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

const (
	defaultOllamaHost = "http://localhost:11434"
	defaultModel      = "nomic-embed-text"
	embeddingsPath    = "/api/embeddings"
)

// OllamaEmbedder generates embeddings through a local Ollama server.
type OllamaEmbedder struct {
	host   string
	model  string
	dims   int
	client *http.Client
}

// NewOllamaEmbedder builds an embedder from config, filling defaults
// for host, model, dimensions, and timeout.
func NewOllamaEmbedder(cfg types.EmbeddingConfig) *OllamaEmbedder {
	host := cfg.OllamaHost
	if host == "" {
		host = defaultOllamaHost
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = DefaultDimensions
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OllamaEmbedder{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		dims:   dims,
		client: &http.Client{Timeout: timeout},
	}
}

// Dimensions returns the configured vector length.
func (o *OllamaEmbedder) Dimensions() int { return o.dims }

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed requests an embedding from Ollama and L2-normalizes it.
func (o *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("embedding empty text")
	}

	body, err := json.Marshal(ollamaRequest{Model: o.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("encoding embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+embeddingsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, o.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Ollama embedding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama returned HTTP %d", resp.StatusCode)
	}

	var or ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("parsing Ollama response: %w", err)
	}
	if len(or.Embedding) == 0 {
		return nil, fmt.Errorf("Ollama returned an empty embedding")
	}

	vec := make([]float32, len(or.Embedding))
	for i, v := range or.Embedding {
		vec[i] = float32(v)
	}
	normalize(vec)
	return vec, nil
}
