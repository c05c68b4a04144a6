// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Principle is one of the 40 inventive principles.
type Principle struct {
	// ID is the classical principle number (1-40).
	ID int `json:"id" yaml:"id"`

	// Name is the principle's short name (e.g. "Segmentation").
	Name string `json:"name" yaml:"name"`

	// Description explains the principle in one or two sentences.
	Description string `json:"description" yaml:"description"`

	// SubPrinciples lists the principle's specific variants.
	SubPrinciples []string `json:"sub_principles,omitempty" yaml:"sub_principles,omitempty"`

	// Examples lists concrete applications of the principle.
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Domains lists industries where the principle is commonly applied.
	Domains []string `json:"domains,omitempty" yaml:"domains,omitempty"`

	// UsageFrequency classifies how often the principle appears in
	// patent analyses: high, medium, or low.
	UsageFrequency string `json:"usage_frequency,omitempty" yaml:"usage_frequency,omitempty"`

	// RelatedPrinciples lists principle numbers frequently combined
	// with this one.
	RelatedPrinciples []int `json:"related_principles,omitempty" yaml:"related_principles,omitempty"`
}
