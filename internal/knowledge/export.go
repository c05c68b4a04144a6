// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Export is the full knowledge base in one serializable document, for
// external tooling and diffing across releases.
type Export struct {
	Principles []types.Principle            `json:"principles" yaml:"principles"`
	Parameters []types.EngineeringParameter `json:"parameters" yaml:"parameters"`
	Matrix     []types.MatrixEntry          `json:"matrix" yaml:"matrix"`
}

// ExportDoc assembles the export document in stable order.
func (b *Base) ExportDoc() Export {
	return Export{
		Principles: b.Principles(),
		Parameters: b.Parameters(),
		Matrix:     b.Entries(),
	}
}

// ExportYAML writes the knowledge base to path as YAML.
func (b *Base) ExportYAML(path string) error {
	data, err := yaml.Marshal(b.ExportDoc())
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(path, data)
}

// ExportJSON writes the knowledge base to path as indented JSON.
func (b *Base) ExportJSON(path string) error {
	data, err := json.MarshalIndent(b.ExportDoc(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(path, append(data, '\n'))
}

func writeExport(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
