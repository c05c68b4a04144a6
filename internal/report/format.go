// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// FormatMarkdown renders a report and its solution concepts as
// human-readable markdown.
func FormatMarkdown(w io.Writer, r types.ResearchReport, concepts []types.SolutionConcept) error {
	fmt.Fprintf(w, "# Research Report\n\n")
	fmt.Fprintf(w, "**Problem:** %s\n\n", r.Problem)

	if r.SourceUnavailable {
		fmt.Fprintf(w, "> **Knowledge base unavailable.** No sources could be searched; the findings below are empty. Retry once the vector index is reachable.\n\n")
	}
	if r.Truncated {
		fmt.Fprintf(w, "> **Partial results.** The research time budget expired before all refinement rounds completed.\n\n")
	}

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "- Findings: %d\n", r.TotalFindings)
	fmt.Fprintf(w, "- Queries executed: %d\n", len(r.QueriesExecuted))
	fmt.Fprintf(w, "- Sources consulted: %s\n", orNone(strings.Join(r.SourcesConsulted, ", ")))
	if len(r.SearchErrors) > 0 {
		fmt.Fprintf(w, "- Search errors: %d\n", len(r.SearchErrors))
	}
	fmt.Fprintln(w)

	if len(r.Themes) > 0 {
		fmt.Fprintf(w, "## Themes\n\n")
		for i, theme := range r.Themes {
			fmt.Fprintf(w, "### %d. %s (confidence %.2f)\n\n", i+1, theme.Title, theme.Confidence)
			for _, f := range theme.SupportingFindings {
				fmt.Fprintf(w, "- [%s] %s (%.2f)\n", f.SourceLabel, f.Excerpt, f.RelevanceScore)
			}
			for _, note := range theme.CrossDomainNotes {
				fmt.Fprintf(w, "- Cross-domain: %s\n", note)
			}
			fmt.Fprintln(w)
		}
	}

	if len(concepts) > 0 {
		fmt.Fprintf(w, "## Solution Concepts\n\n")
		for i, c := range concepts {
			fmt.Fprintf(w, "### %d. %s (confidence %.2f)\n\n", i+1, c.Title, c.Confidence)
			fmt.Fprintf(w, "%s\n\n", c.Description)
			if len(c.PrincipleNames) > 0 {
				fmt.Fprintf(w, "**Principles:** %s\n\n", strings.Join(c.PrincipleNames, ", "))
			}
			writeList(w, "Pros", c.Pros)
			writeList(w, "Cons", c.Cons)
			writeList(w, "Implementation hints", c.ImplementationHints)
			if len(c.Citations) > 0 {
				fmt.Fprintf(w, "**Citations:** %s\n\n", strings.Join(c.Citations, ", "))
			}
		}
	}

	if len(r.GapsRemaining) > 0 {
		fmt.Fprintf(w, "## Remaining Gaps\n\n")
		for _, gap := range r.GapsRemaining {
			fmt.Fprintf(w, "- %s (still open after depth %d)\n", gap.Category, gap.DetectedAtDepth)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatJSON renders the report and concepts as one indented JSON
// document.
func FormatJSON(w io.Writer, r types.ResearchReport, concepts []types.SolutionConcept) error {
	doc := struct {
		Report    types.ResearchReport    `json:"report"`
		Solutions []types.SolutionConcept `json:"solutions,omitempty"`
	}{Report: r, Solutions: concepts}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeList(w io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "**%s:**\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(w, "- %s\n", item)
	}
	fmt.Fprintln(w)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
