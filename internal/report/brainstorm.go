// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
)

const (
	minIdeas          = 3
	maxSubVariants    = 2
	maxSuggestedIdeas = 5
)

// Idea is one brainstormed application of an inventive principle to a
// concrete context.
type Idea struct {
	// Title names the idea.
	Title string `json:"title"`

	// Description explains how to apply the principle to the context.
	Description string `json:"description"`

	// Principle is the inventive principle number behind the idea.
	Principle int `json:"principle"`
}

// Brainstorm generates at least three application ideas for one
// inventive principle against a user-supplied context: a direct
// application, variants drawn from the principle's sub-principles, and
// an adaptation of a known example.
func Brainstorm(base *knowledge.Base, principleID int, context string) ([]Idea, error) {
	context = strings.TrimSpace(context)
	if context == "" {
		return nil, fmt.Errorf("brainstorm context is empty")
	}
	p, ok := base.Principle(principleID)
	if !ok {
		return nil, fmt.Errorf("principle number %d out of range (1-40)", principleID)
	}

	ideas := []Idea{{
		Title:       fmt.Sprintf("Apply %s directly", p.Name),
		Description: fmt.Sprintf("Apply %s to %s: %s", p.Name, context, lowerFirst(p.Description)),
		Principle:   p.ID,
	}}

	for i, sub := range p.SubPrinciples {
		if i >= maxSubVariants {
			break
		}
		ideas = append(ideas, Idea{
			Title:       fmt.Sprintf("%s, variant %d", p.Name, i+1),
			Description: fmt.Sprintf("For %s: %s", context, lowerFirst(sub)),
			Principle:   p.ID,
		})
	}

	if len(p.Examples) > 0 {
		ideas = append(ideas, Idea{
			Title:       "Adapt a known application",
			Description: fmt.Sprintf("Similar to how %s, rework %s along the same lines.", lowerFirst(p.Examples[0]), context),
			Principle:   p.ID,
		})
	}

	for len(ideas) < minIdeas {
		ideas = append(ideas, Idea{
			Title:       fmt.Sprintf("Reframe with %s", p.Name),
			Description: fmt.Sprintf("Restate %s as if %s were already in place, then work backwards to the mechanism that gets there.", context, p.Name),
			Principle:   p.ID,
		})
	}
	return ideas, nil
}

// SuggestPrinciples ranks inventive principles for a free-text problem:
// contradictions extracted from the text drive matrix lookups, whose
// recommendations are merged strongest-first. When no contradiction is
// detected the overall usage ranking stands in. At most topK numbers
// are returned.
func SuggestPrinciples(base *knowledge.Base, problem string, topK int) []int {
	if topK <= 0 {
		topK = maxSuggestedIdeas
	}

	seen := make(map[int]bool)
	var ids []int
	for _, pair := range knowledge.ContradictionsFromText(problem) {
		entry, err := base.Lookup(pair[0], pair[1])
		if err != nil {
			continue
		}
		for _, id := range entry.Principles {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		ids = base.MostUsedPrinciples(topK)
	}
	if len(ids) > topK {
		ids = ids[:topK]
	}
	return ids
}

// lowerFirst lowercases the leading rune so a sentence fragment can be
// spliced mid-sentence. Fragments opening with an acronym keep their
// case.
func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if len(runes) > 1 && unicode.IsUpper(runes[1]) {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
