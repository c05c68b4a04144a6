// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

func finding(sourceID, label, excerpt string, score float64) types.Finding {
	return types.Finding{
		SourceID:       sourceID,
		SourceLabel:    label,
		Excerpt:        excerpt,
		Collection:     "principles",
		RelevanceScore: score,
		FoundBy:        []types.SearchQuery{{Text: "q-" + sourceID, Intent: types.IntentDirect}},
	}
}

func TestPool_MergeDeduplicates(t *testing.T) {
	pool := NewPool(30)
	pool.Merge([]types.Finding{finding("a", "src", "same excerpt", 0.6)})

	dup := finding("a", "src", "same excerpt", 0.9)
	dup.FoundBy = []types.SearchQuery{{Text: "another query", Intent: types.IntentAnalogy}}
	pool.Merge([]types.Finding{dup})

	if pool.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", pool.Len())
	}
	got := pool.Ranked()[0]
	if got.RelevanceScore != 0.9 {
		t.Errorf("merged score = %f, want the higher 0.9", got.RelevanceScore)
	}
	if len(got.FoundBy) != 2 {
		t.Errorf("FoundBy has %d queries, want the union of 2", len(got.FoundBy))
	}

	// Same source, different excerpt is a distinct finding.
	pool.Merge([]types.Finding{finding("a", "src", "different excerpt", 0.5)})
	if pool.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pool.Len())
	}
}

func TestPool_DuplicateNeverLowersScore(t *testing.T) {
	pool := NewPool(30)
	pool.Merge([]types.Finding{finding("a", "src", "x", 0.9)})
	pool.Merge([]types.Finding{finding("a", "src", "x", 0.4)})
	if got := pool.Ranked()[0].RelevanceScore; got != 0.9 {
		t.Errorf("score = %f, want 0.9 kept", got)
	}
}

func TestPool_DiversityRerank(t *testing.T) {
	pool := NewPool(30)
	pool.Merge([]types.Finding{
		finding("a1", "alpha", "e1", 0.9),
		finding("a2", "alpha", "e2", 0.85),
		finding("a3", "alpha", "e3", 0.8),
		finding("b1", "beta", "e4", 0.7),
	})

	// After two alpha picks the third drops to 0.8-0.2=0.6, below beta's 0.7.
	want := []string{"a1", "a2", "b1", "a3"}
	ranked := pool.Ranked()
	got := make([]string, len(ranked))
	for i, f := range ranked {
		got[i] = f.SourceID
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ranked order = %v, want %v", got, want)
	}
}

func TestPool_CapAndOverflow(t *testing.T) {
	pool := NewPool(3)
	var batch []types.Finding
	for i := 0; i < 5; i++ {
		batch = append(batch, finding(fmt.Sprintf("id%d", i), fmt.Sprintf("src%d", i), fmt.Sprintf("excerpt %d", i), 0.9-0.1*float64(i)))
	}
	pool.Merge(batch)

	if pool.Len() != 5 {
		t.Errorf("Len() = %d, want all 5 retained", pool.Len())
	}
	if got := len(pool.Ranked()); got != 3 {
		t.Errorf("Ranked() has %d findings, want the cap of 3", got)
	}
	if got := len(pool.Overflow()); got != 2 {
		t.Errorf("Overflow() has %d findings, want 2", got)
	}
}

func TestPool_MergeIsMonotonic(t *testing.T) {
	pool := NewPool(30)
	before := 0
	for i := 0; i < 4; i++ {
		pool.Merge([]types.Finding{
			finding(fmt.Sprintf("n%d", i), "src", fmt.Sprintf("excerpt %d", i), 0.5),
			finding("n0", "src", "excerpt 0", 0.3), // repeat every round
		})
		if pool.Len() < before {
			t.Fatalf("pool shrank from %d to %d on merge %d", before, pool.Len(), i)
		}
		before = pool.Len()
	}
	if pool.Len() != 4 {
		t.Errorf("Len() = %d, want 4 unique findings", pool.Len())
	}
}

func TestPool_RankedDeterministic(t *testing.T) {
	batch := []types.Finding{
		finding("a", "alpha", "e1", 0.8),
		finding("b", "beta", "e2", 0.8),
		finding("c", "alpha", "e3", 0.8),
	}
	p1, p2 := NewPool(30), NewPool(30)
	p1.Merge(batch)
	p2.Merge(batch)
	if !reflect.DeepEqual(p1.Ranked(), p2.Ranked()) {
		t.Error("identical merges produced different rankings")
	}
	// Equal effective scores resolve to discovery order.
	if got := p1.Ranked()[0].SourceID; got != "a" {
		t.Errorf("first ranked = %s, want discovery-order tiebreak a", got)
	}
}
