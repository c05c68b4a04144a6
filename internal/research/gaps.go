// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"strings"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Category is one kind of information a complete report is expected to
// contain. A category is satisfied when any finding comes from one of
// its collections or mentions one of its keywords.
type Category struct {
	Name        string
	Keywords    []string
	Collections []string
}

// DefaultCategories are the information kinds every run checks for.
var DefaultCategories = []Category{
	{
		Name:        "materials data",
		Keywords:    []string{"material", "alloy", "composite", "polymer", "density", "modulus"},
		Collections: []string{"materials"},
	},
	{
		Name:     "implementation guidance",
		Keywords: []string{"implement", "step", "procedure", "process", "method", "approach"},
	},
	{
		Name:        "case studies",
		Keywords:    []string{"case", "example", "application", "applied", "deployed"},
		Collections: []string{"historical-resolutions"},
	},
	{
		Name:     "quantitative results",
		Keywords: []string{"percent", "%", "measured", "measurement", "mpa", "gpa", "ratio", "factor of"},
	},
}

// DetectGaps returns the categories no finding satisfies, tagged with
// the refinement depth they were detected at. An empty result means the
// pool covers every expected information kind.
func DetectGaps(findings []types.Finding, categories []Category, depth int) []types.KnowledgeGap {
	var gaps []types.KnowledgeGap
	for _, cat := range categories {
		if !satisfied(findings, cat) {
			gaps = append(gaps, types.KnowledgeGap{
				Category:        cat.Name,
				DetectedAtDepth: depth,
			})
		}
	}
	return gaps
}

func satisfied(findings []types.Finding, cat Category) bool {
	for _, f := range findings {
		for _, coll := range cat.Collections {
			if f.Collection == coll {
				return true
			}
		}
		excerpt := strings.ToLower(f.Excerpt)
		for _, kw := range cat.Keywords {
			if strings.Contains(excerpt, kw) {
				return true
			}
		}
	}
	return false
}
