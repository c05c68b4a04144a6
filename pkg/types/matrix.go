// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EngineeringParameter is one of the 39 classical engineering
// parameters used to index the contradiction matrix.
type EngineeringParameter struct {
	// ID is the parameter number (1-39).
	ID int `json:"id" yaml:"id"`

	// Name is the parameter's standard name (e.g. "Weight of moving object").
	Name string `json:"name" yaml:"name"`

	// Description explains what the parameter measures.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// MatrixEntry is one cell of the contradiction matrix: the principles
// recommended when improving one parameter worsens another.
type MatrixEntry struct {
	// Improving is the parameter being improved.
	Improving int `json:"improving" yaml:"improving"`

	// Worsening is the parameter that degrades as a consequence.
	Worsening int `json:"worsening" yaml:"worsening"`

	// Principles lists recommended principle numbers, strongest first.
	Principles []int `json:"principles" yaml:"principles"`

	// Confidence reflects how well-established the cell is, in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Applications counts known applications of the cell in patent
	// literature. Zero when unknown.
	Applications int `json:"applications,omitempty" yaml:"applications,omitempty"`
}
