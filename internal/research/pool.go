// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"math"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// DiversityPenalty is subtracted from a finding's relevance once per
// already-selected finding that shares its source label, so no single
// source can monopolize the ranked pool.
const DiversityPenalty = 0.1

// Pool accumulates unique findings across refinement rounds. Identity
// is (source id, excerpt); merging a duplicate keeps the higher
// relevance score and unions the discovering queries. The pool holds
// every unique finding ever merged, but ranks only the top cap of them;
// the remainder stays reachable through Overflow.
type Pool struct {
	cap      int
	all      []types.Finding // discovery order
	index    map[string]int
	ranked   []int // indexes into all, diversity-ranked
	overflow []int // indexes into all, discovery order
}

// NewPool returns an empty pool ranking at most cap findings.
func NewPool(cap int) *Pool {
	return &Pool{cap: cap, index: make(map[string]int)}
}

// Merge folds a raw batch into the pool and reranks. Duplicates never
// shrink the pool, and merging extra batches never removes a finding.
func (p *Pool) Merge(batch []types.Finding) {
	for _, f := range batch {
		key := f.Key()
		if i, ok := p.index[key]; ok {
			if f.RelevanceScore > p.all[i].RelevanceScore {
				p.all[i].RelevanceScore = f.RelevanceScore
			}
			p.all[i].FoundBy = unionQueries(p.all[i].FoundBy, f.FoundBy)
			continue
		}
		p.index[key] = len(p.all)
		p.all = append(p.all, f)
	}
	p.rerank()
}

// rerank greedily picks up to cap findings by effective score: raw
// relevance minus DiversityPenalty for each prior pick from the same
// source label. Ties resolve to discovery order, keeping the ranking
// deterministic.
func (p *Pool) rerank() {
	n := len(p.all)
	picked := make([]int, 0, min(p.cap, n))
	used := make([]bool, n)
	perSource := make(map[string]int)

	for len(picked) < p.cap && len(picked) < n {
		best := -1
		bestScore := math.Inf(-1)
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			score := p.all[i].RelevanceScore - DiversityPenalty*float64(perSource[p.all[i].SourceLabel])
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
		used[best] = true
		picked = append(picked, best)
		perSource[p.all[best].SourceLabel]++
	}

	p.ranked = picked
	p.overflow = p.overflow[:0]
	for i := 0; i < n; i++ {
		if !used[i] {
			p.overflow = append(p.overflow, i)
		}
	}
}

// Len reports the number of unique findings merged so far.
func (p *Pool) Len() int { return len(p.all) }

// Ranked returns copies of the diversity-ranked findings, best first.
func (p *Pool) Ranked() []types.Finding {
	out := make([]types.Finding, len(p.ranked))
	for i, idx := range p.ranked {
		out[i] = p.all[idx]
	}
	return out
}

// Overflow returns the findings that did not make the ranked cut, in
// discovery order.
func (p *Pool) Overflow() []types.Finding {
	out := make([]types.Finding, len(p.overflow))
	for i, idx := range p.overflow {
		out[i] = p.all[idx]
	}
	return out
}

// All returns every unique finding in discovery order.
func (p *Pool) All() []types.Finding {
	out := make([]types.Finding, len(p.all))
	copy(out, p.all)
	return out
}

// SourceLabels returns the distinct source labels seen, sorted.
func (p *Pool) SourceLabels() []string {
	labels := make([]string, 0, len(p.all))
	for _, f := range p.all {
		labels = append(labels, f.SourceLabel)
	}
	return sortedUnique(labels)
}

func unionQueries(existing, extra []types.SearchQuery) []types.SearchQuery {
	for _, q := range extra {
		dup := false
		for _, have := range existing {
			if have.Text == q.Text && have.OriginDepth == q.OriginDepth {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, q)
		}
	}
	return existing
}
