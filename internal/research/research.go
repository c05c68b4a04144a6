// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research implements the multi-stage research pipeline: it
// expands a problem statement into intent-tagged queries, fans them out
// across the vector collections, merges and reranks the findings,
// detects knowledge gaps, refines recursively within a bounded depth,
// and synthesizes the evidence into cited themes.
//
// The pipeline owns no external clients. The embedding provider and the
// vector index are injected, and their lifecycle belongs to the caller.
package research

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/internal/vector"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

// ErrInvalidInput is returned when the problem statement is empty or
// whitespace-only. It is the only hard error the pipeline surfaces;
// every other condition degrades to a partial or fallback report.
var ErrInvalidInput = errors.New("problem statement is empty")

// Embedder converts text to a fixed-length vector. Must be
// deterministic for identical text within a run.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index performs nearest-neighbor search over a named collection.
// Scores are normalized to [0, 1], 1 being most relevant.
type Index interface {
	Search(ctx context.Context, collection string, query []float32, k int) ([]vector.Result, error)
}

// Pinger is implemented by indexes that can report reachability. The
// engine probes it at run start to detect full outage early.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Engine runs research problems against an embedder and a vector index.
type Engine struct {
	embedder Embedder
	index    Index
	cfg      types.ResearchConfig
	log      *zap.Logger
}

// NewEngine builds an engine. The logger may be nil.
func NewEngine(embedder Embedder, index Index, cfg types.ResearchConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		embedder: embedder,
		index:    index,
		cfg:      cfg.WithDefaults(),
		log:      log,
	}
}

// Research runs the full pipeline for one problem statement and always
// returns a report for recoverable conditions: full index outage yields
// a fallback report with SourceUnavailable set, and an expired time
// budget yields a partial report with Truncated set. Only an empty
// problem statement is a hard error.
func (e *Engine) Research(ctx context.Context, problem string) (types.ResearchReport, error) {
	if strings.TrimSpace(problem) == "" {
		return types.ResearchReport{}, ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.OverallTimeout)
	defer cancel()

	report := types.ResearchReport{Problem: problem}

	// Outage probe: an unreachable index means fallback mode, not an error.
	if p, ok := e.index.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			e.log.Warn("vector index unreachable at run start, entering fallback mode",
				zap.Error(err))
			report.SourceUnavailable = true
			return report, nil
		}
	}

	executor := &Executor{
		embedder:      e.embedder,
		index:         e.index,
		maxInFlight:   e.cfg.MaxInFlight,
		searchTimeout: e.cfg.SearchTimeout,
		perQueryLimit: e.cfg.PerQueryLimit,
		log:           e.log,
	}
	controller := &Controller{
		executor:    executor,
		categories:  DefaultCategories,
		collections: e.cfg.Collections,
		maxDepth:    e.cfg.MaxDepth,
		poolCap:     e.cfg.PoolCap,
		log:         e.log,
	}

	out, err := controller.run(ctx, problem)
	if err != nil {
		return types.ResearchReport{}, err
	}

	report.QueriesExecuted = out.queries
	report.SearchErrors = out.searchErrors
	report.GapsRemaining = out.gaps
	report.TotalFindings = out.pool.Len()
	report.SourcesConsulted = out.pool.SourceLabels()
	report.Truncated = out.truncated

	if out.pool.Len() == 0 {
		if out.attempted > 0 && out.failed == out.attempted {
			e.log.Warn("every search failed, entering fallback mode",
				zap.Int("attempted", out.attempted))
			report.SourceUnavailable = true
		}
		return report, nil
	}

	report.Themes = Synthesize(ctx, out.pool.Ranked(), e.embedder, primaryDomain(problem))
	e.log.Info("research complete",
		zap.Int("findings", report.TotalFindings),
		zap.Int("themes", len(report.Themes)),
		zap.Int("gaps_remaining", len(report.GapsRemaining)),
		zap.Bool("truncated", report.Truncated))
	return report, nil
}

// primaryDomain infers the problem's own industry so cross-domain
// findings can be surfaced separately.
func primaryDomain(problem string) string {
	domains := inferDomains(strings.ToLower(problem))
	if len(domains) == 0 {
		return "general"
	}
	return domains[0]
}

// sortedUnique returns the distinct values of ss, sorted.
func sortedUnique(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	var out []string
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
