// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed converts text into fixed-length vectors for the vector
// index. Two providers are available: a deterministic offline hashing
// embedder and an Ollama HTTP client.
package embed

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Embedder converts text to a fixed-length vector. Implementations must
// be deterministic for identical text within a run.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// DefaultDimensions matches the nomic-embed-text output size so hash
// and Ollama vectors can share collections created with either.
const DefaultDimensions = 768

// HashEmbedder maps tokens into a fixed-length vector by feature
// hashing. It needs no model or network and is fully deterministic,
// which makes it the offline default and the test embedder.
type HashEmbedder struct {
	// Dims is the vector length. Zero means DefaultDimensions.
	Dims int
}

// Dimensions returns the vector length.
func (h *HashEmbedder) Dimensions() int {
	if h.Dims <= 0 {
		return DefaultDimensions
	}
	return h.Dims
}

// Embed hashes each token (and adjacent-token bigram) into a bucket,
// accumulates signed counts, and L2-normalizes the result. Identical
// text always produces identical vectors.
func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("embedding empty text")
	}

	dims := h.Dimensions()
	vec := make([]float32, dims)

	add := func(feature string) {
		hash := fnv.New64a()
		hash.Write([]byte(feature))
		sum := hash.Sum64()
		bucket := int(sum % uint64(dims))
		sign := float32(1)
		if sum&(1<<63) != 0 {
			sign = -1
		}
		vec[bucket] += sign
	}

	for i, tok := range tokens {
		add(tok)
		if i+1 < len(tokens) {
			add(tok + " " + tokens[i+1])
		}
	}

	normalize(vec)
	return vec, nil
}

// Tokenize lowercases text and splits it into alphanumeric runs.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
}
