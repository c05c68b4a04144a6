// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SolutionConcept is a research-backed solution proposal derived from
// one or more synthesized themes.
type SolutionConcept struct {
	// Title names the concept (usually after its leading principle).
	Title string `json:"title" yaml:"title"`

	// Description explains the concept and how the principles apply.
	Description string `json:"description" yaml:"description"`

	// AppliedPrinciples lists the inventive principle numbers used.
	AppliedPrinciples []int `json:"applied_principles" yaml:"applied_principles"`

	// PrincipleNames mirrors AppliedPrinciples with display names.
	PrincipleNames []string `json:"principle_names" yaml:"principle_names"`

	// Pros lists advantages extracted from the supporting research.
	Pros []string `json:"pros,omitempty" yaml:"pros,omitempty"`

	// Cons lists limitations extracted from the supporting research.
	Cons []string `json:"cons,omitempty" yaml:"cons,omitempty"`

	// ImplementationHints lists concrete next steps found in the research.
	ImplementationHints []string `json:"implementation_hints,omitempty" yaml:"implementation_hints,omitempty"`

	// Confidence is the backing theme's confidence, in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Citations lists the source labels supporting the concept.
	Citations []string `json:"citations,omitempty" yaml:"citations,omitempty"`
}
