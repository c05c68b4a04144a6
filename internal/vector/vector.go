// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vector stores embedded documents in named collections and
// answers nearest-neighbor queries over them. The backing store is a
// single SQLite database; search is brute-force cosine, which is more
// than fast enough for reference libraries of a few thousand chunks.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Record is a document chunk to be indexed.
type Record struct {
	// ID identifies the record within its collection.
	ID string `json:"id" yaml:"id"`

	// Text is the chunk content returned as the excerpt on search hits.
	Text string `json:"text" yaml:"text"`

	// Metadata carries source attributes: "source" (document title),
	// "domain", "principle_id", "principle_name".
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Vector is the record's embedding.
	Vector []float32 `json:"-" yaml:"-"`
}

// Result is one search hit.
type Result struct {
	// ID is the matching record's identifier.
	ID string `json:"id"`

	// Text is the matching record's content.
	Text string `json:"text"`

	// Metadata is the matching record's metadata.
	Metadata map[string]string `json:"metadata,omitempty"`

	// Score is the similarity in [0, 1], 1 being most relevant.
	Score float64 `json:"score"`
}

// encodeVector packs a float32 slice into a little-endian blob.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeVector unpacks a little-endian blob into a float32 slice.
func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}

// Cosine returns the cosine similarity of two vectors. Mismatched
// lengths or zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// similarityScore maps cosine in [-1, 1] onto [0, 1].
func similarityScore(cos float64) float64 {
	s := (cos + 1) / 2
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
