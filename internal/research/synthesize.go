// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/triz-copilot/internal/vector"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

const (
	// sourceWeight and collectionWeight set how much each distinct
	// source and collection contributes to a theme's confidence.
	sourceWeight     = 0.2
	collectionWeight = 0.1

	// clusterThreshold is the minimum excerpt similarity for two
	// non-principle findings to land in the same theme.
	clusterThreshold = 0.75

	// maxSupporting bounds the findings cited per theme.
	maxSupporting = 10
)

// Synthesize groups ranked findings into evidence-linked themes.
// Findings tagged with an inventive principle group by principle;
// the rest cluster by excerpt similarity, falling back to grouping by
// collection when the embedder is unavailable. Every theme cites its
// supporting findings, carries a confidence in [0, 1] that grows with
// source and collection agreement, and flags evidence from industries
// other than the problem's own.
func Synthesize(ctx context.Context, findings []types.Finding, embedder Embedder, problemDomain string) []types.SynthesizedTheme {
	if len(findings) == 0 {
		return nil
	}

	themes := make([]types.SynthesizedTheme, 0, 4)
	for _, group := range groupFindings(ctx, findings, embedder) {
		themes = append(themes, buildTheme(group, problemDomain))
	}

	sort.SliceStable(themes, func(i, j int) bool {
		if themes[i].Confidence != themes[j].Confidence {
			return themes[i].Confidence > themes[j].Confidence
		}
		if len(themes[i].SupportingFindings) != len(themes[j].SupportingFindings) {
			return len(themes[i].SupportingFindings) > len(themes[j].SupportingFindings)
		}
		return themes[i].Title < themes[j].Title
	})
	return themes
}

func buildTheme(group []types.Finding, problemDomain string) types.SynthesizedTheme {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].RelevanceScore > group[j].RelevanceScore
	})
	supporting := group
	if len(supporting) > maxSupporting {
		supporting = supporting[:maxSupporting]
	}

	sources := make(map[string]struct{})
	collections := make(map[string]struct{})
	var notes []string
	for _, f := range supporting {
		sources[f.SourceLabel] = struct{}{}
		collections[f.Collection] = struct{}{}
		if f.Domain != "" && f.Domain != problemDomain {
			notes = append(notes, fmt.Sprintf("%s: %s", f.Domain, condense(f.Excerpt, 20)))
		}
	}

	confidence := sourceWeight*float64(len(sources)) + collectionWeight*float64(len(collections))
	if confidence > 1 {
		confidence = 1
	}

	theme := types.SynthesizedTheme{
		Title:              themeTitle(supporting),
		SupportingFindings: supporting,
		Confidence:         confidence,
		CrossDomainNotes:   notes,
	}
	if supporting[0].PrincipleID > 0 {
		theme.PrincipleID = supporting[0].PrincipleID
	}
	return theme
}

// themeTitle derives a stable title from the group's strongest finding.
// Principle excerpts are stored as "Name: description", so the clause
// before the first colon names the principle.
func themeTitle(supporting []types.Finding) string {
	top := supporting[0]
	head := top.Excerpt
	if i := strings.Index(head, ":"); i > 0 {
		head = head[:i]
	}
	head = condense(head, 8)
	if top.PrincipleID > 0 {
		return fmt.Sprintf("Principle %d: %s", top.PrincipleID, head)
	}
	return head
}

// groupFindings splits findings into theme groups. Principle-tagged
// findings group by principle id. The rest are clustered single-link on
// excerpt similarity; any embedding failure drops the remainder to a
// by-collection grouping so synthesis still works offline.
func groupFindings(ctx context.Context, findings []types.Finding, embedder Embedder) [][]types.Finding {
	byPrinciple := make(map[int][]types.Finding)
	var loose []types.Finding
	for _, f := range findings {
		if f.PrincipleID > 0 {
			byPrinciple[f.PrincipleID] = append(byPrinciple[f.PrincipleID], f)
		} else {
			loose = append(loose, f)
		}
	}

	ids := make([]int, 0, len(byPrinciple))
	for id := range byPrinciple {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	groups := make([][]types.Finding, 0, len(ids)+1)
	for _, id := range ids {
		groups = append(groups, byPrinciple[id])
	}
	if len(loose) > 0 {
		groups = append(groups, clusterLoose(ctx, loose, embedder)...)
	}
	return groups
}

func clusterLoose(ctx context.Context, loose []types.Finding, embedder Embedder) [][]types.Finding {
	vecs := make([][]float32, len(loose))
	for i, f := range loose {
		v, err := embedder.Embed(ctx, f.Excerpt)
		if err != nil {
			return groupByCollection(loose)
		}
		vecs[i] = v
	}

	// Single-link: any pair above the threshold joins their clusters.
	parent := make([]int, len(loose))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := 0; i < len(loose); i++ {
		for j := i + 1; j < len(loose); j++ {
			if vector.Cosine(vecs[i], vecs[j]) >= clusterThreshold {
				parent[find(j)] = find(i)
			}
		}
	}

	order := make([]int, 0, len(loose))
	byRoot := make(map[int][]types.Finding)
	for i, f := range loose {
		root := find(i)
		if _, seen := byRoot[root]; !seen {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], f)
	}
	groups := make([][]types.Finding, 0, len(order))
	for _, root := range order {
		groups = append(groups, byRoot[root])
	}
	return groups
}

func groupByCollection(loose []types.Finding) [][]types.Finding {
	var order []string
	byColl := make(map[string][]types.Finding)
	for _, f := range loose {
		if _, seen := byColl[f.Collection]; !seen {
			order = append(order, f.Collection)
		}
		byColl[f.Collection] = append(byColl[f.Collection], f)
	}
	groups := make([][]types.Finding, 0, len(order))
	for _, coll := range order {
		groups = append(groups, byColl[coll])
	}
	return groups
}
