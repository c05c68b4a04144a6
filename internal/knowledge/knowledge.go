// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge holds the built-in innovation knowledge base: the
// 40 inventive principles, the 39 engineering parameters, and the
// classical contradiction matrix. The data ships embedded in the binary
// so lookups work with nothing installed.
package knowledge

import (
	_ "embed"
	"fmt"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

//go:embed data/principles.yaml
var principlesYAML []byte

//go:embed data/matrix.yaml
var matrixYAML []byte

// Base is the loaded knowledge base. It is immutable after Load.
type Base struct {
	principles map[int]types.Principle
	parameters map[int]types.EngineeringParameter
	matrix     map[[2]int]types.MatrixEntry

	// byPrinciple indexes matrix cells by each recommended principle.
	byPrinciple map[int][][2]int
}

type principlesFile struct {
	Principles []types.Principle `yaml:"principles"`
}

type matrixFile struct {
	Parameters []types.EngineeringParameter `yaml:"parameters"`
	Entries    []types.MatrixEntry          `yaml:"entries"`
}

// Load parses the embedded data files and builds the lookup indexes.
func Load() (*Base, error) {
	var pf principlesFile
	if err := yaml.Unmarshal(principlesYAML, &pf); err != nil {
		return nil, fmt.Errorf("parsing principles data: %w", err)
	}
	var mf matrixFile
	if err := yaml.Unmarshal(matrixYAML, &mf); err != nil {
		return nil, fmt.Errorf("parsing matrix data: %w", err)
	}

	b := &Base{
		principles:  make(map[int]types.Principle, len(pf.Principles)),
		parameters:  make(map[int]types.EngineeringParameter, len(mf.Parameters)),
		matrix:      make(map[[2]int]types.MatrixEntry, len(mf.Entries)),
		byPrinciple: make(map[int][][2]int),
	}
	for _, p := range pf.Principles {
		if p.ID < 1 || p.ID > 40 {
			return nil, fmt.Errorf("principle id %d out of range", p.ID)
		}
		b.principles[p.ID] = p
	}
	for _, p := range mf.Parameters {
		if p.ID < 1 || p.ID > 39 {
			return nil, fmt.Errorf("parameter id %d out of range", p.ID)
		}
		b.parameters[p.ID] = p
	}
	for _, e := range mf.Entries {
		if _, ok := b.parameters[e.Improving]; !ok {
			return nil, fmt.Errorf("matrix entry references unknown parameter %d", e.Improving)
		}
		if _, ok := b.parameters[e.Worsening]; !ok {
			return nil, fmt.Errorf("matrix entry references unknown parameter %d", e.Worsening)
		}
		key := [2]int{e.Improving, e.Worsening}
		b.matrix[key] = e
		for _, principle := range e.Principles {
			b.byPrinciple[principle] = append(b.byPrinciple[principle], key)
		}
	}
	return b, nil
}

// Principle returns the principle with the given number.
func (b *Base) Principle(id int) (types.Principle, bool) {
	p, ok := b.principles[id]
	return p, ok
}

// Principles returns all principles ordered by number.
func (b *Base) Principles() []types.Principle {
	out := make([]types.Principle, 0, len(b.principles))
	for _, p := range b.principles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Parameter returns the engineering parameter with the given number.
func (b *Base) Parameter(id int) (types.EngineeringParameter, bool) {
	p, ok := b.parameters[id]
	return p, ok
}

// Parameters returns all engineering parameters ordered by number.
func (b *Base) Parameters() []types.EngineeringParameter {
	out := make([]types.EngineeringParameter, 0, len(b.parameters))
	for _, p := range b.parameters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the matrix cell for an (improving, worsening) pair.
// The diagonal and unknown parameters are rejected.
func (b *Base) Lookup(improving, worsening int) (types.MatrixEntry, error) {
	if _, ok := b.parameters[improving]; !ok {
		return types.MatrixEntry{}, fmt.Errorf("unknown improving parameter %d", improving)
	}
	if _, ok := b.parameters[worsening]; !ok {
		return types.MatrixEntry{}, fmt.Errorf("unknown worsening parameter %d", worsening)
	}
	if improving == worsening {
		return types.MatrixEntry{}, fmt.Errorf("parameter %d cannot improve and worsen at once", improving)
	}
	if e, ok := b.matrix[[2]int{improving, worsening}]; ok {
		return e, nil
	}
	// No recorded cell is not an error: return general-purpose
	// principles at low confidence, the classical fallback.
	return types.MatrixEntry{
		Improving:  improving,
		Worsening:  worsening,
		Principles: []int{1, 2, 13, 15, 35},
		Confidence: 0.3,
	}, nil
}

// Entries returns every recorded matrix cell ordered by (improving,
// worsening).
func (b *Base) Entries() []types.MatrixEntry {
	out := make([]types.MatrixEntry, 0, len(b.matrix))
	for _, e := range b.matrix {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Improving != out[j].Improving {
			return out[i].Improving < out[j].Improving
		}
		return out[i].Worsening < out[j].Worsening
	})
	return out
}

// EntriesForPrinciple returns the matrix cells that recommend the given
// principle, ordered by (improving, worsening).
func (b *Base) EntriesForPrinciple(principle int) []types.MatrixEntry {
	keys := b.byPrinciple[principle]
	out := make([]types.MatrixEntry, 0, len(keys))
	for _, key := range keys {
		out = append(out, b.matrix[key])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Improving != out[j].Improving {
			return out[i].Improving < out[j].Improving
		}
		return out[i].Worsening < out[j].Worsening
	})
	return out
}

// MostUsedPrinciples returns up to topK principle numbers ranked by how
// many matrix cells recommend them, weighted by application counts.
func (b *Base) MostUsedPrinciples(topK int) []int {
	weights := make(map[int]int)
	for _, e := range b.matrix {
		for _, principle := range e.Principles {
			weights[principle] += 1 + e.Applications
		}
	}
	ids := make([]int, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if weights[ids[i]] != weights[ids[j]] {
			return weights[ids[i]] > weights[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if topK > 0 && len(ids) > topK {
		ids = ids[:topK]
	}
	return ids
}
