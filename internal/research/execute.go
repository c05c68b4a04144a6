// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/internal/vector"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Executor fans a planned query batch out across the vector
// collections. Each (query, collection) pair is an independent search;
// a failed pair is logged and skipped, never fatal.
type Executor struct {
	embedder      Embedder
	index         Index
	maxInFlight   int
	searchTimeout time.Duration
	perQueryLimit int
	log           *zap.Logger
}

// SearchOutput is the raw yield of one executor batch. Attempted and
// Failed count (query, collection) pairs so the engine can tell a dry
// run from a dead index.
type SearchOutput struct {
	Findings  []types.Finding
	Errors    []string
	Attempted int
	Failed    int
}

type pairResult struct {
	findings []types.Finding
	err      string
}

// ExecuteSearches embeds each query once, then searches every
// collection for every successfully embedded query, at most maxInFlight
// searches at a time. Ordering of the returned findings follows the
// query order, then the collection order, so the batch is deterministic
// for a deterministic embedder and index.
func (e *Executor) ExecuteSearches(ctx context.Context, queries []types.SearchQuery, collections []string) SearchOutput {
	out := SearchOutput{Attempted: len(queries) * len(collections)}
	if out.Attempted == 0 {
		return out
	}

	embeddings := make([][]float32, len(queries))
	for i, q := range queries {
		ectx, cancel := context.WithTimeout(ctx, e.searchTimeout)
		vec, err := e.embedder.Embed(ectx, q.Text)
		cancel()
		if err != nil {
			e.log.Warn("embedding failed, skipping query",
				zap.String("query", q.Text), zap.Error(err))
			out.Errors = append(out.Errors, fmt.Sprintf("embed %q: %v", q.Text, err))
			out.Failed += len(collections)
			continue
		}
		embeddings[i] = vec
	}

	sem := make(chan struct{}, e.maxInFlight)
	results := make(chan pairResult, out.Attempted)
	var wg sync.WaitGroup
	for i, q := range queries {
		if embeddings[i] == nil {
			continue
		}
		for _, collection := range collections {
			wg.Add(1)
			go func(q types.SearchQuery, vec []float32, collection string) {
				defer wg.Done()
				results <- e.searchOne(ctx, sem, q, vec, collection)
			}(q, embeddings[i], collection)
		}
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	byPair := make(map[string]pairResult, out.Attempted)
	for r := range results {
		if r.err != "" {
			out.Failed++
			out.Errors = append(out.Errors, r.err)
			continue
		}
		if len(r.findings) > 0 {
			f := r.findings[0]
			byPair[f.FoundBy[0].Text+"\x00"+f.Collection] = r
		}
	}

	// Reassemble in plan order so concurrency never changes the batch.
	for i, q := range queries {
		if embeddings[i] == nil {
			continue
		}
		for _, collection := range collections {
			if r, ok := byPair[q.Text+"\x00"+collection]; ok {
				out.Findings = append(out.Findings, r.findings...)
			}
		}
	}
	return out
}

func (e *Executor) searchOne(ctx context.Context, sem chan struct{}, q types.SearchQuery, vec []float32, collection string) pairResult {
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return pairResult{err: fmt.Sprintf("%s: %q: %v", collection, q.Text, ctx.Err())}
	}
	defer func() { <-sem }()

	sctx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	defer cancel()

	hits, err := e.index.Search(sctx, collection, vec, e.perQueryLimit)
	if err != nil {
		e.log.Warn("search failed, skipping pair",
			zap.String("collection", collection),
			zap.String("query", q.Text),
			zap.Error(err))
		return pairResult{err: fmt.Sprintf("%s: %q: %v", collection, q.Text, err)}
	}
	return pairResult{findings: toFindings(hits, q, collection)}
}

// toFindings converts raw index hits into findings attributed to the
// query that surfaced them.
func toFindings(hits []vector.Result, q types.SearchQuery, collection string) []types.Finding {
	findings := make([]types.Finding, 0, len(hits))
	for _, h := range hits {
		label := h.Metadata["source"]
		if label == "" {
			label = collection
		}
		principleID, _ := strconv.Atoi(h.Metadata["principle_id"])
		findings = append(findings, types.Finding{
			SourceID:       h.ID,
			SourceLabel:    label,
			Excerpt:        h.Text,
			Collection:     collection,
			RelevanceScore: clamp01(h.Score),
			FoundBy:        []types.SearchQuery{q},
			PrincipleID:    principleID,
			Domain:         h.Metadata["domain"],
		})
	}
	return findings
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
