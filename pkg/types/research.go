// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the TRIZ co-pilot:
// research pipeline entities, the inventive-principle knowledge base,
// the contradiction matrix, the materials reference, and configuration.
package types

// QueryIntent tags the facet of the problem a search query covers.
type QueryIntent string

const (
	// IntentDirect restates the problem as-is.
	IntentDirect QueryIntent = "direct"

	// IntentContradiction reframes the problem as an "improve X without
	// worsening Y" technical contradiction.
	IntentContradiction QueryIntent = "contradiction"

	// IntentAnalogy asks how another domain or nature solves the problem.
	IntentAnalogy QueryIntent = "analogy"

	// IntentGapFill targets a knowledge-gap category detected in a
	// previous research round.
	IntentGapFill QueryIntent = "gap_fill"
)

// SearchQuery is one planned query against the vector collections.
// Queries are immutable once planned.
type SearchQuery struct {
	// Text is the query string sent to the embedding provider.
	Text string `json:"text" yaml:"text"`

	// Intent tags which planning template produced the query.
	Intent QueryIntent `json:"intent" yaml:"intent"`

	// OriginDepth is the refinement round that planned the query.
	// Zero for the initial planning pass.
	OriginDepth int `json:"origin_depth" yaml:"origin_depth"`
}

// Finding is a single retrieved evidence snippet with its source and
// relevance. Two findings with the same (SourceID, Excerpt) are the
// same finding; the merger keeps the higher score and unions FoundBy.
type Finding struct {
	// SourceID is the vector record identifier within its collection.
	SourceID string `json:"source_id" yaml:"source_id"`

	// SourceLabel is the human-readable origin (book or document title).
	SourceLabel string `json:"source_label" yaml:"source_label"`

	// Excerpt is the retrieved text passage, carried verbatim into
	// citations.
	Excerpt string `json:"excerpt" yaml:"excerpt"`

	// Collection names the document pool the finding came from.
	Collection string `json:"collection" yaml:"collection"`

	// RelevanceScore is the index similarity score in [0, 1].
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// FoundBy lists every query that retrieved this finding, in
	// discovery order.
	FoundBy []SearchQuery `json:"found_by" yaml:"found_by"`

	// PrincipleID links the finding to an inventive principle when the
	// source record carries one. Zero when absent.
	PrincipleID int `json:"principle_id,omitempty" yaml:"principle_id,omitempty"`

	// Domain is the industry/domain tag from the source record
	// (e.g. "aerospace", "nature"). Empty when untagged.
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// Key returns the identity used for deduplication.
func (f Finding) Key() string {
	return f.SourceID + "\x00" + f.Excerpt
}

// KnowledgeGap is an expected information category with no supporting
// finding yet. Gaps are scoped to a single research run.
type KnowledgeGap struct {
	// Category names the missing information kind
	// (e.g. "materials data", "implementation guidance").
	Category string `json:"category" yaml:"category"`

	// DetectedAtDepth is the refinement round that flagged the gap.
	DetectedAtDepth int `json:"detected_at_depth" yaml:"detected_at_depth"`
}

// SynthesizedTheme is a cluster of related findings presented as one
// insight with citations.
type SynthesizedTheme struct {
	// Title summarizes the theme (principle name or excerpt-derived).
	Title string `json:"title" yaml:"title"`

	// PrincipleID is set when the theme maps to an inventive principle.
	PrincipleID int `json:"principle_id,omitempty" yaml:"principle_id,omitempty"`

	// SupportingFindings lists up to ten of the highest-relevance,
	// diverse-source findings backing the theme.
	SupportingFindings []Finding `json:"supporting_findings" yaml:"supporting_findings"`

	// Confidence grows with source and collection corroboration,
	// capped at 1.0.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// CrossDomainNotes carries excerpts from domains other than the
	// problem's own, verbatim.
	CrossDomainNotes []string `json:"cross_domain_notes,omitempty" yaml:"cross_domain_notes,omitempty"`
}

// ResearchReport is the terminal output of one research run. It is
// created once per run and never mutated after return.
type ResearchReport struct {
	// Problem is the original problem statement.
	Problem string `json:"problem" yaml:"problem"`

	// TotalFindings counts unique findings accumulated across all
	// refinement rounds.
	TotalFindings int `json:"total_findings" yaml:"total_findings"`

	// SourcesConsulted lists the distinct source labels, sorted.
	SourcesConsulted []string `json:"sources_consulted" yaml:"sources_consulted"`

	// QueriesExecuted lists every planned query in execution order.
	QueriesExecuted []SearchQuery `json:"queries_executed" yaml:"queries_executed"`

	// Themes are the synthesized insights, ordered by confidence.
	Themes []SynthesizedTheme `json:"themes" yaml:"themes"`

	// GapsRemaining lists categories still unfilled when the run ended.
	GapsRemaining []KnowledgeGap `json:"gaps_remaining,omitempty" yaml:"gaps_remaining,omitempty"`

	// SourceUnavailable is true when the vector index was unreachable
	// for the entire run. Themes is empty in that case and callers must
	// render a fallback message instead of a normal report.
	SourceUnavailable bool `json:"source_unavailable,omitempty" yaml:"source_unavailable,omitempty"`

	// Truncated is true when the run hit its overall time budget and
	// returned partial results.
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`

	// SearchErrors records per-search failures that were skipped.
	// Informational only; never fatal.
	SearchErrors []string `json:"search_errors,omitempty" yaml:"search_errors,omitempty"`
}
