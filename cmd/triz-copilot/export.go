// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the knowledge base to a YAML or JSON file",
	Long: `Export writes the bundled knowledge base (40 principles, 39 engineering
parameters, and the contradiction matrix) to one file. The format
follows the file extension: .yaml, .yml, or .json.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	base, err := knowledge.Load()
	if err != nil {
		return err
	}

	path := args[0]
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		err = base.ExportYAML(path)
	case strings.HasSuffix(path, ".json"):
		err = base.ExportJSON(path)
	default:
		return fmt.Errorf("export path must end in .yaml, .yml, or .json")
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported knowledge base to %s\n", path)
	return nil
}
