// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

func sampleReport() types.ResearchReport {
	return types.ResearchReport{
		Problem:          "reduce wing weight without losing strength",
		TotalFindings:    4,
		SourcesConsulted: []string{"contradiction-matrix", "principles-library"},
		QueriesExecuted:  []types.SearchQuery{{Text: "q1"}, {Text: "q2"}},
		Themes: []types.SynthesizedTheme{
			{
				Title:       "Principle 40: Composite materials",
				PrincipleID: 40,
				Confidence:  0.6,
				SupportingFindings: []types.Finding{
					{SourceID: "principle-40", SourceLabel: "principles-library", Excerpt: "Composite materials: change from uniform to composite", RelevanceScore: 0.9},
					{SourceID: "matrix-1-14", SourceLabel: "contradiction-matrix", Excerpt: "resolved by composites", RelevanceScore: 0.8},
				},
				CrossDomainNotes: []string{"automotive: racing monocoques"},
			},
			{
				Title:       "Principle 1: Segmentation",
				PrincipleID: 1,
				Confidence:  0.3,
				SupportingFindings: []types.Finding{
					{SourceID: "principle-1", SourceLabel: "principles-library", Excerpt: "Segmentation: divide an object", RelevanceScore: 0.7},
				},
			},
		},
		GapsRemaining: []types.KnowledgeGap{{Category: "quantitative results", DetectedAtDepth: 3}},
	}
}

func loadBase(t *testing.T) *knowledge.Base {
	t.Helper()
	b, err := knowledge.Load()
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSolutions(t *testing.T) {
	concepts := Solutions(sampleReport(), loadBase(t))

	// Two theme concepts plus a hybrid.
	if len(concepts) != 3 {
		t.Fatalf("got %d concepts, want 3", len(concepts))
	}
	first := concepts[0]
	if first.Title != "Solution using Composite materials" {
		t.Errorf("title = %q", first.Title)
	}
	if len(first.AppliedPrinciples) != 1 || first.AppliedPrinciples[0] != 40 {
		t.Errorf("applied principles = %v", first.AppliedPrinciples)
	}
	if first.Confidence != 0.6 {
		t.Errorf("confidence = %f, want the theme's 0.6", first.Confidence)
	}
	if len(first.Citations) != 2 {
		t.Errorf("citations = %v, want both source ids", first.Citations)
	}
	crossDomain := false
	for _, hint := range first.ImplementationHints {
		if strings.Contains(hint, "automotive") {
			crossDomain = true
		}
	}
	if !crossDomain {
		t.Error("cross-domain note should surface as an implementation hint")
	}

	hybrid := concepts[2]
	if !strings.HasPrefix(hybrid.Title, "Hybrid solution:") {
		t.Errorf("hybrid title = %q", hybrid.Title)
	}
	if len(hybrid.AppliedPrinciples) != 2 {
		t.Errorf("hybrid principles = %v", hybrid.AppliedPrinciples)
	}
}

func TestSolutions_Empty(t *testing.T) {
	r := types.ResearchReport{Problem: "anything", SourceUnavailable: true}
	if concepts := Solutions(r, loadBase(t)); concepts != nil {
		t.Errorf("Solutions() = %v, want nil for a report without themes", concepts)
	}
}

func TestFormatMarkdown(t *testing.T) {
	r := sampleReport()
	concepts := Solutions(r, loadBase(t))

	var buf bytes.Buffer
	if err := FormatMarkdown(&buf, r, concepts); err != nil {
		t.Fatalf("FormatMarkdown() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Research Report",
		"reduce wing weight",
		"Principle 40: Composite materials",
		"Solution using Composite materials",
		"quantitative results",
		"[principles-library]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(out, "unavailable") {
		t.Error("clean report should not carry the outage notice")
	}
}

func TestFormatMarkdown_Notices(t *testing.T) {
	var buf bytes.Buffer
	r := types.ResearchReport{Problem: "p", SourceUnavailable: true, Truncated: true}
	if err := FormatMarkdown(&buf, r, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Knowledge base unavailable") {
		t.Error("missing outage notice")
	}
	if !strings.Contains(out, "Partial results") {
		t.Error("missing truncation notice")
	}
}

func TestFormatJSON(t *testing.T) {
	r := sampleReport()
	concepts := Solutions(r, loadBase(t))

	var buf bytes.Buffer
	if err := FormatJSON(&buf, r, concepts); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var doc struct {
		Report    types.ResearchReport    `json:"report"`
		Solutions []types.SolutionConcept `json:"solutions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Report.TotalFindings != 4 || len(doc.Solutions) != 3 {
		t.Errorf("round-trip lost data: %d findings, %d solutions",
			doc.Report.TotalFindings, len(doc.Solutions))
	}
}
