// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/internal/embed"
	"github.com/pdiddy/triz-copilot/internal/vector"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

func testExecutor(idx Index) *Executor {
	return &Executor{
		embedder:      &embed.HashEmbedder{Dims: 64},
		index:         idx,
		maxInFlight:   5,
		searchTimeout: time.Second,
		perQueryLimit: 5,
		log:           zap.NewNop(),
	}
}

func planOf(texts ...string) []types.SearchQuery {
	qs := make([]types.SearchQuery, len(texts))
	for i, text := range texts {
		qs[i] = types.SearchQuery{Text: text, Intent: types.IntentDirect}
	}
	return qs
}

func TestExecuteSearches_DeterministicOrder(t *testing.T) {
	idx := &fakeIndex{results: map[string][]vector.Result{
		"principles": {{ID: "p", Text: "one", Score: 0.9}},
		"materials":  {{ID: "m", Text: "two", Score: 0.8}},
	}}
	exec := testExecutor(idx)
	queries := planOf("alpha", "beta")
	collections := []string{"principles", "materials"}

	out := exec.ExecuteSearches(context.Background(), queries, collections)
	if out.Failed != 0 || len(out.Errors) != 0 {
		t.Fatalf("unexpected failures: %v", out.Errors)
	}
	if len(out.Findings) != 4 {
		t.Fatalf("got %d findings, want 4", len(out.Findings))
	}

	// Query order, then collection order, regardless of goroutine timing.
	wantIDs := []string{"p", "m", "p", "m"}
	wantQueries := []string{"alpha", "alpha", "beta", "beta"}
	for i, f := range out.Findings {
		if f.SourceID != wantIDs[i] {
			t.Errorf("finding %d id = %s, want %s", i, f.SourceID, wantIDs[i])
		}
		if f.FoundBy[0].Text != wantQueries[i] {
			t.Errorf("finding %d query = %s, want %s", i, f.FoundBy[0].Text, wantQueries[i])
		}
	}
}

func TestExecuteSearches_SkipsFailedCollection(t *testing.T) {
	idx := &fakeIndex{
		results:   map[string][]vector.Result{"principles": {{ID: "p", Text: "one", Score: 0.9}}},
		failColls: map[string]bool{"materials": true},
	}
	exec := testExecutor(idx)
	queries := planOf("alpha", "beta")

	out := exec.ExecuteSearches(context.Background(), queries, []string{"principles", "materials"})
	if out.Attempted != 4 {
		t.Errorf("Attempted = %d, want 4", out.Attempted)
	}
	if out.Failed != 2 {
		t.Errorf("Failed = %d, want 2", out.Failed)
	}
	if len(out.Findings) != 2 {
		t.Errorf("got %d findings from the surviving collection, want 2", len(out.Findings))
	}
	if len(out.Errors) != 2 {
		t.Errorf("got %d errors, want 2", len(out.Errors))
	}
}

func TestExecuteSearches_EmbedFailureSkipsQuery(t *testing.T) {
	idx := &fakeIndex{results: map[string][]vector.Result{
		"principles": {{ID: "p", Text: "one", Score: 0.9}},
	}}
	exec := testExecutor(idx)
	exec.embedder = failingEmbedder{}

	out := exec.ExecuteSearches(context.Background(), planOf("alpha"), []string{"principles", "materials"})
	if out.Failed != out.Attempted {
		t.Errorf("Failed = %d, want all %d pairs", out.Failed, out.Attempted)
	}
	if len(out.Findings) != 0 {
		t.Errorf("got %d findings, want 0", len(out.Findings))
	}
	if len(out.Errors) == 0 {
		t.Error("expected an embed error to be reported")
	}
}

func TestExecuteSearches_BoundsConcurrency(t *testing.T) {
	idx := &fakeIndex{
		results: map[string][]vector.Result{"principles": {{ID: "p", Text: "one", Score: 0.9}}},
		delay:   5 * time.Millisecond,
	}
	exec := testExecutor(idx)
	exec.maxInFlight = 2

	queries := planOf("a", "b", "c", "d", "e", "f")
	exec.ExecuteSearches(context.Background(), queries, []string{"principles", "materials"})

	if idx.maxInFlight > 2 {
		t.Errorf("observed %d concurrent searches, want at most 2", idx.maxInFlight)
	}
	if idx.calls != 12 {
		t.Errorf("index saw %d calls, want 12", idx.calls)
	}
}

func TestExecuteSearches_ScoresClamped(t *testing.T) {
	idx := &fakeIndex{results: map[string][]vector.Result{
		"principles": {
			{ID: "hi", Text: "one", Score: 1.7},
			{ID: "lo", Text: "two", Score: -0.3},
		},
	}}
	exec := testExecutor(idx)

	out := exec.ExecuteSearches(context.Background(), planOf("alpha"), []string{"principles"})
	if len(out.Findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(out.Findings))
	}
	if out.Findings[0].RelevanceScore != 1 || out.Findings[1].RelevanceScore != 0 {
		t.Errorf("scores = %f, %f, want clamped to 1 and 0",
			out.Findings[0].RelevanceScore, out.Findings[1].RelevanceScore)
	}
}
