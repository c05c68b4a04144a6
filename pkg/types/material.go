// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Material is one entry in the materials reference database.
type Material struct {
	// ID is a stable slug (e.g. "al_7075").
	ID string `json:"id" yaml:"id"`

	// Name is the material's display name.
	Name string `json:"name" yaml:"name"`

	// Category groups the material: metals, composites, polymers, ceramics.
	Category string `json:"category" yaml:"category"`

	// Properties maps property names to values. Conventional keys:
	// density (g/cm3), tensile_strength (MPa), yield_strength (MPa),
	// elastic_modulus (GPa), thermal_conductivity (W/mK).
	Properties map[string]float64 `json:"properties" yaml:"properties"`

	// Advantages lists the material's strong points.
	Advantages []string `json:"advantages,omitempty" yaml:"advantages,omitempty"`

	// Disadvantages lists the material's weak points.
	Disadvantages []string `json:"disadvantages,omitempty" yaml:"disadvantages,omitempty"`

	// Applications lists typical uses.
	Applications []string `json:"applications,omitempty" yaml:"applications,omitempty"`

	// CostIndex ranks relative cost on a 0-10 scale.
	CostIndex float64 `json:"cost_index" yaml:"cost_index"`

	// SustainabilityScore ranks recyclability and footprint in [0, 1].
	SustainabilityScore float64 `json:"sustainability_score" yaml:"sustainability_score"`
}
