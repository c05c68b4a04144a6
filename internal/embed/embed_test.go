// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

func TestHashEmbedderDeterministic(t *testing.T) {
	e := &HashEmbedder{Dims: 64}

	a, err := e.Embed(context.Background(), "reduce weight while maintaining strength")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	b, err := e.Embed(context.Background(), "reduce weight while maintaining strength")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestHashEmbedderNormalized(t *testing.T) {
	e := &HashEmbedder{Dims: 128}

	vec, err := e.Embed(context.Background(), "lightweight aluminum sheet forming")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1.0) > 1e-5 {
		t.Errorf("squared norm = %f, want 1.0", sum)
	}
}

func TestHashEmbedderEmptyText(t *testing.T) {
	e := &HashEmbedder{}
	if _, err := e.Embed(context.Background(), "   \t "); err == nil {
		t.Error("Embed() on blank text should fail")
	}
}

func TestHashEmbedderDistinctTexts(t *testing.T) {
	e := &HashEmbedder{Dims: 256}

	a, _ := e.Embed(context.Background(), "thermal conductivity of copper")
	b, _ := e.Embed(context.Background(), "fatigue life of titanium")

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("distinct texts produced identical vectors")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Reduce Weight!", []string{"reduce", "weight"}},
		{"Ti-6Al-4V alloy", []string{"ti", "6al", "4v", "alloy"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestOllamaEmbedder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("path = %q, want /api/embeddings", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "nomic-embed-text" {
			t.Errorf("model = %q", req.Model)
		}
		json.NewEncoder(w).Encode(ollamaResponse{Embedding: []float64{3, 4}})
	}))
	defer ts.Close()

	e := NewOllamaEmbedder(types.EmbeddingConfig{OllamaHost: ts.URL})
	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vec) != 2 {
		t.Fatalf("len(vec) = %d, want 2", len(vec))
	}
	// 3-4-5 triangle normalizes to 0.6, 0.8.
	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Errorf("vec = %v, want [0.6 0.8]", vec)
	}
}

func TestOllamaEmbedderHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	e := NewOllamaEmbedder(types.EmbeddingConfig{OllamaHost: ts.URL})
	if _, err := e.Embed(context.Background(), "hello"); err == nil {
		t.Error("Embed() should fail on HTTP 404")
	}
}
