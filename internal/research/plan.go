// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"strings"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Query count bounds for the initial pass and for gap-directed passes.
const (
	minInitialQueries = 8
	maxInitialQueries = 15
	minGapQueries     = 3
	maxGapQueries     = 5
)

// contrastPairs are attribute pairs that commonly trade off against each
// other. When both halves appear in the problem text the planner emits a
// contradiction reframing for the pair.
var contrastPairs = [][2]string{
	{"weight", "strength"},
	{"speed", "stability"},
	{"speed", "accuracy"},
	{"cost", "quality"},
	{"power", "efficiency"},
	{"size", "capacity"},
	{"durability", "weight"},
	{"flexibility", "strength"},
	{"temperature", "strength"},
}

// directionVerbs introduce the quantity the problem wants moved, e.g.
// "reduce weight" or "increase stiffness".
var directionVerbs = []string{"increase", "reduce", "improve", "minimize", "maximize", "decrease"}

// analogyDomains are industries searched for analogous solutions when
// they are not the problem's own domain.
var analogyDomains = []string{"nature", "aerospace", "automotive", "medical", "construction", "electronics"}

// domainKeywords maps an industry to the words that place a problem in it.
var domainKeywords = map[string][]string{
	"aerospace":     {"aircraft", "aerospace", "wing", "fuselage", "satellite", "rocket"},
	"automotive":    {"car", "vehicle", "automotive", "engine", "chassis", "brake"},
	"medical":       {"medical", "surgical", "implant", "patient", "prosthetic"},
	"manufacturing": {"factory", "production", "assembly", "machining", "manufacturing"},
	"electronics":   {"circuit", "semiconductor", "electronic", "battery", "sensor"},
	"construction":  {"building", "bridge", "concrete", "structural", "construction"},
}

// padTemplates guarantee coverage of each expected information kind when
// the reframing rules alone produce too few queries.
var padTemplates = []string{
	"materials selection for %s",
	"implementation guidance for %s",
	"case studies of %s",
	"quantitative results for %s",
	"historical resolutions of %s",
}

// PlanQueries expands a problem statement into intent-tagged search
// queries. With no gap hints it produces the broad initial pass; with
// hints it produces a small gap-directed pass. The expansion is
// deterministic: identical inputs yield identical queries in identical
// order. Every query carries the depth it originated at.
func PlanQueries(problem string, gapHints []string, depth int) ([]types.SearchQuery, error) {
	trimmed := strings.TrimSpace(problem)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}
	if len(gapHints) > 0 {
		return planGapQueries(trimmed, gapHints, depth), nil
	}
	return planInitialQueries(trimmed, depth), nil
}

func planInitialQueries(problem string, depth int) []types.SearchQuery {
	b := queryBuilder{depth: depth, max: maxInitialQueries}
	lower := strings.ToLower(problem)
	short := condense(problem, 8)

	// Direct restatements.
	b.add(problem, types.IntentDirect)
	b.add("inventive principles for solving "+condense(problem, 12), types.IntentDirect)
	b.add("solution examples for "+short, types.IntentDirect)

	// Contradiction reframings from trade-off pairs present in the text.
	for _, pair := range contrastPairs {
		if strings.Contains(lower, pair[0]) && strings.Contains(lower, pair[1]) {
			b.add(fmt.Sprintf("improve %s without worsening %s", pair[0], pair[1]),
				types.IntentContradiction)
		}
	}

	// One reframing per direction verb, targeting the quantity it moves.
	for _, verb := range directionVerbs {
		if obj := objectOf(lower, verb); obj != "" {
			b.add(obj+" optimization methods and trade-offs", types.IntentContradiction)
		}
	}

	// Analogies from industries other than the problem's own.
	own := inferDomains(lower)
	analogies := 0
	for _, domain := range analogyDomains {
		if containsString(own, domain) {
			continue
		}
		b.add(fmt.Sprintf("how does %s solve %s", domain, short), types.IntentAnalogy)
		analogies++
		if analogies == 3 {
			break
		}
	}

	// Pad to the minimum with fixed coverage templates.
	for _, tmpl := range padTemplates {
		if len(b.queries) >= minInitialQueries {
			break
		}
		b.add(fmt.Sprintf(tmpl, short), types.IntentDirect)
	}
	return b.queries
}

func planGapQueries(problem string, gapHints []string, depth int) []types.SearchQuery {
	b := queryBuilder{depth: depth, max: maxGapQueries}
	short := condense(problem, 8)

	for _, hint := range gapHints {
		b.add(fmt.Sprintf("%s for %s", hint, short), types.IntentGapFill)
	}
	for _, hint := range gapHints {
		b.add(fmt.Sprintf("%s examples relevant to %s", hint, short), types.IntentGapFill)
	}
	// A single hint yields only two queries above; pad with a broader probe.
	for _, hint := range gapHints {
		if len(b.queries) >= minGapQueries {
			break
		}
		b.add(fmt.Sprintf("detailed %s reference information", hint), types.IntentGapFill)
	}
	return b.queries
}

// queryBuilder accumulates queries, dropping duplicate text and
// enforcing the pass's maximum.
type queryBuilder struct {
	depth   int
	max     int
	queries []types.SearchQuery
	seen    map[string]struct{}
}

func (b *queryBuilder) add(text string, intent types.QueryIntent) {
	if len(b.queries) >= b.max {
		return
	}
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	key := strings.ToLower(text)
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	b.queries = append(b.queries, types.SearchQuery{
		Text:        text,
		Intent:      intent,
		OriginDepth: b.depth,
	})
}

// condense returns the first n whitespace-separated words of s.
func condense(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// objectOf returns the word following the first occurrence of verb in
// text, or "" when the verb is absent or dangling.
func objectOf(text, verb string) string {
	idx := strings.Index(text, verb+" ")
	if idx < 0 {
		return ""
	}
	rest := strings.Fields(text[idx+len(verb):])
	if len(rest) == 0 {
		return ""
	}
	return strings.Trim(rest[0], ".,;:!?")
}

// inferDomains returns the industries whose keywords appear in the
// lowercased problem text, in the order of analogyDomains plus
// manufacturing.
func inferDomains(lower string) []string {
	ordered := []string{"aerospace", "automotive", "medical", "manufacturing", "electronics", "construction"}
	var out []string
	for _, domain := range ordered {
		for _, kw := range domainKeywords[domain] {
			if strings.Contains(lower, kw) {
				out = append(out, domain)
				break
			}
		}
	}
	return out
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
