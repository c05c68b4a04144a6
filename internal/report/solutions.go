// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns research reports into solution concepts and
// renders both for people and for machines.
package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

const maxConceptThemes = 3

// Solutions derives solution concepts from a report's themes: one
// concept per leading theme, plus a hybrid concept when two or more
// principle-backed themes exist. Concepts carry citations back to the
// findings that support them.
func Solutions(r types.ResearchReport, base *knowledge.Base) []types.SolutionConcept {
	if len(r.Themes) == 0 {
		return nil
	}

	var concepts []types.SolutionConcept
	var principled []types.SynthesizedTheme
	for i, theme := range r.Themes {
		if i >= maxConceptThemes {
			break
		}
		concepts = append(concepts, conceptFromTheme(theme, base))
		if theme.PrincipleID > 0 {
			principled = append(principled, theme)
		}
	}
	if len(principled) >= 2 {
		concepts = append(concepts, hybridConcept(principled[0], principled[1], base))
	}
	return concepts
}

func conceptFromTheme(theme types.SynthesizedTheme, base *knowledge.Base) types.SolutionConcept {
	concept := types.SolutionConcept{
		Title:      "Solution from " + theme.Title,
		Confidence: theme.Confidence,
		Pros: []string{
			"Directly addresses the identified trade-off",
			"Supported by " + plural(len(theme.SupportingFindings), "finding"),
		},
		Cons: []string{
			"May require system redesign",
			"Initial implementation cost",
		},
		Citations: citations(theme),
	}

	var desc strings.Builder
	if p, ok := principleOf(theme, base); ok {
		concept.AppliedPrinciples = []int{p.ID}
		concept.PrincipleNames = []string{p.Name}
		concept.Title = "Solution using " + p.Name
		fmt.Fprintf(&desc, "Apply %s: %s", p.Name, p.Description)
		for _, sub := range p.SubPrinciples {
			concept.ImplementationHints = append(concept.ImplementationHints, sub)
		}
		concept.Pros = append(concept.Pros, fmt.Sprintf("Based on established principle #%d", p.ID))
	} else {
		fmt.Fprintf(&desc, "Act on the evidence grouped under %q.", theme.Title)
	}
	if len(theme.SupportingFindings) > 0 {
		fmt.Fprintf(&desc, " Strongest evidence: %s", theme.SupportingFindings[0].Excerpt)
	}
	for _, note := range theme.CrossDomainNotes {
		concept.ImplementationHints = append(concept.ImplementationHints,
			"Cross-domain precedent - "+note)
	}
	concept.Description = desc.String()
	return concept
}

func hybridConcept(a, b types.SynthesizedTheme, base *knowledge.Base) types.SolutionConcept {
	pa, _ := principleOf(a, base)
	pb, _ := principleOf(b, base)
	confidence := (a.Confidence + b.Confidence) / 2

	return types.SolutionConcept{
		Title: fmt.Sprintf("Hybrid solution: %s + %s", pa.Name, pb.Name),
		Description: fmt.Sprintf(
			"Combine %s with %s to address multiple aspects of the problem at once. %s %s",
			pa.Name, pb.Name, pa.Description, pb.Description),
		AppliedPrinciples: []int{pa.ID, pb.ID},
		PrincipleNames:    []string{pa.Name, pb.Name},
		Pros: []string{
			"Addresses multiple contradictions",
			"Synergistic effects possible",
			"More robust solution",
		},
		Cons: []string{
			"More complex implementation",
			"Requires careful integration",
		},
		Confidence: confidence,
		Citations:  append(citations(a), citations(b)...),
	}
}

func principleOf(theme types.SynthesizedTheme, base *knowledge.Base) (types.Principle, bool) {
	if theme.PrincipleID <= 0 || base == nil {
		return types.Principle{}, false
	}
	return base.Principle(theme.PrincipleID)
}

func citations(theme types.SynthesizedTheme) []string {
	seen := make(map[string]struct{}, len(theme.SupportingFindings))
	var out []string
	for _, f := range theme.SupportingFindings {
		if _, dup := seen[f.SourceID]; dup {
			continue
		}
		seen[f.SourceID] = struct{}{}
		out = append(out, f.SourceID)
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
