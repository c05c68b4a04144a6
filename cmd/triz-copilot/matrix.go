// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix [improving] [worsening]",
	Short: "Look up the contradiction matrix",
	Long: `Matrix resolves an engineering contradiction: given the parameter being
improved and the parameter that worsens (numbers 1-39), it recommends
inventive principles with a confidence score.

With --problem, the contradiction is extracted from free text instead:

  triz-copilot matrix --problem "improve strength without adding weight"

With --params, the 39 engineering parameters are listed.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().String("problem", "", "extract contradictions from a problem statement")
	matrixCmd.Flags().Bool("params", false, "list the 39 engineering parameters")
	matrixCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	base, err := knowledge.Load()
	if err != nil {
		return err
	}
	jsonOut, _ := cmd.Flags().GetBool("json")

	if listParams, _ := cmd.Flags().GetBool("params"); listParams {
		return printParameters(base, jsonOut)
	}

	pairs, err := matrixPairs(cmd, args)
	if err != nil {
		return err
	}

	var entries []types.MatrixEntry
	for _, pair := range pairs {
		entry, err := base.Lookup(pair[0], pair[1])
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, entry := range entries {
		printEntry(base, entry)
	}
	return nil
}

func matrixPairs(cmd *cobra.Command, args []string) ([][2]int, error) {
	problem, _ := cmd.Flags().GetString("problem")
	if problem != "" {
		pairs := knowledge.ContradictionsFromText(problem)
		if len(pairs) == 0 {
			return nil, fmt.Errorf("no contradiction detected; state the problem as a trade-off or pass parameter numbers")
		}
		return pairs, nil
	}

	if len(args) != 2 {
		return nil, fmt.Errorf("pass improving and worsening parameter numbers, or --problem")
	}
	improving, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("improving parameter must be an integer, got %q", args[0])
	}
	worsening, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("worsening parameter must be an integer, got %q", args[1])
	}
	return [][2]int{{improving, worsening}}, nil
}

func printEntry(base *knowledge.Base, entry types.MatrixEntry) {
	imp, _ := base.Parameter(entry.Improving)
	wor, _ := base.Parameter(entry.Worsening)

	fmt.Printf("Improving %q while %q worsens:\n\n", imp.Name, wor.Name)
	for _, id := range entry.Principles {
		if p, ok := base.Principle(id); ok {
			fmt.Printf("  %2d  %-35s  %s\n", p.ID, p.Name, p.Description)
		}
	}
	fmt.Printf("\nConfidence: %.2f", entry.Confidence)
	if entry.Applications > 0 {
		fmt.Printf("  (%d known applications)", entry.Applications)
	}
	fmt.Println()
	fmt.Println()
}

func printParameters(base *knowledge.Base, jsonOut bool) error {
	params := base.Parameters()
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	}

	fmt.Printf("%-4s  %s\n", "No.", "Parameter")
	fmt.Println(strings.Repeat("-", 45))
	for _, p := range params {
		fmt.Printf("%-4d  %s\n", p.ID, p.Name)
	}
	return nil
}
