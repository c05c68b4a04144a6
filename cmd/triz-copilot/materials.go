// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/materials"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Search, recommend, and compare engineering materials",
	Long: `Materials manages the local engineering materials database. The database
seeds itself with a starter set of metals and composites on first use;
"materials add" extends it.`,
}

// --- search subcommand ---

var materialsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over names, categories, and applications",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMaterialsSearch,
}

func runMaterialsSearch(cmd *cobra.Command, args []string) error {
	store, err := openMaterials()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), contextTimeout)
	defer cancel()

	found, err := store.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(found)
	}
	if len(found) == 0 {
		fmt.Println("No materials matched.")
		return nil
	}
	printMaterialTable(found)
	return nil
}

// --- recommend subcommand ---

var materialsRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank materials against property requirements",
	Long: `Recommend scores every material against property requirements and ranks
the matches, discounting expensive materials and rewarding sustainable
ones. Requirements take the form property=value:

  triz-copilot materials recommend --min tensile_strength=400 --max density=3.0

Constraints of the form no_<word> exclude materials whose category or
name contains the word (e.g. --constraint no_polymer).`,
	RunE: runMaterialsRecommend,
}

func runMaterialsRecommend(cmd *cobra.Command, args []string) error {
	requirements := map[string]materials.Requirement{}
	for _, kind := range []string{"min", "max", "target"} {
		specs, _ := cmd.Flags().GetStringSlice(kind)
		for _, spec := range specs {
			prop, value, err := parseRequirement(spec)
			if err != nil {
				return err
			}
			r := requirements[prop]
			switch kind {
			case "min":
				r.Min = &value
			case "max":
				r.Max = &value
			case "target":
				r.Target = &value
			}
			requirements[prop] = r
		}
	}
	if len(requirements) == 0 {
		return fmt.Errorf("at least one --min, --max, or --target requirement is needed")
	}

	constraints, _ := cmd.Flags().GetStringSlice("constraint")
	topK, _ := cmd.Flags().GetInt("top")

	store, err := openMaterials()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), contextTimeout)
	defer cancel()

	recs, err := store.Recommend(ctx, requirements, constraints, topK)
	if err != nil {
		return err
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(recs)
	}
	if len(recs) == 0 {
		fmt.Println("No materials satisfy the requirements.")
		return nil
	}

	fmt.Printf("%-4s  %-24s  %-12s  %-8s  %s\n", "Rank", "Material", "Category", "Match", "Score")
	fmt.Println(strings.Repeat("-", 60))
	for i, rec := range recs {
		fmt.Printf("%-4d  %-24s  %-12s  %-8.2f  %.2f\n",
			i+1, rec.Material.Name, rec.Material.Category, rec.MatchScore, rec.TotalScore)
	}
	return nil
}

func parseRequirement(spec string) (string, float64, error) {
	prop, raw, ok := strings.Cut(spec, "=")
	if !ok {
		return "", 0, fmt.Errorf("requirement %q must be property=value", spec)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("requirement %q has a non-numeric value", spec)
	}
	return prop, value, nil
}

// --- compare subcommand ---

var materialsCompareCmd = &cobra.Command{
	Use:   "compare [id] [id] ...",
	Short: "Compare materials property by property",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMaterialsCompare,
}

func runMaterialsCompare(cmd *cobra.Command, args []string) error {
	properties, _ := cmd.Flags().GetStringSlice("property")

	store, err := openMaterials()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), contextTimeout)
	defer cancel()

	cmp, err := store.Compare(ctx, args, properties)
	if err != nil {
		return err
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(cmp)
	}

	fmt.Printf("%-22s", "")
	for _, m := range cmp.Materials {
		fmt.Printf("  %-16s", m.Name)
	}
	fmt.Println()
	for _, prop := range sortedKeys(cmp.Properties) {
		fmt.Printf("%-22s", prop)
		for _, v := range cmp.Properties[prop] {
			if math.IsNaN(v) {
				fmt.Printf("  %-16s", "-")
			} else {
				fmt.Printf("  %-16.2f", v)
			}
		}
		fmt.Println()
	}
	return nil
}

// --- list subcommand ---

var materialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List materials, optionally filtered by category",
	RunE:  runMaterialsList,
}

func runMaterialsList(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")

	store, err := openMaterials()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), contextTimeout)
	defer cancel()

	all, err := store.List(ctx, category)
	if err != nil {
		return err
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(all)
	}
	printMaterialTable(all)
	return nil
}

func openMaterials() (*materials.Store, error) {
	return materials.NewStore(pipelineConfig().Materials)
}

func printMaterialTable(found []types.Material) {
	fmt.Printf("%-12s  %-24s  %-12s  %-8s  %s\n", "ID", "Name", "Category", "Cost", "Sustainability")
	fmt.Println(strings.Repeat("-", 70))
	for _, m := range found {
		fmt.Printf("%-12s  %-24s  %-12s  %-8.1f  %.1f\n",
			m.ID, m.Name, m.Category, m.CostIndex, m.SustainabilityScore)
	}
	fmt.Printf("\n%d materials\n", len(found))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	materialsSearchCmd.Flags().Bool("json", false, "output as JSON")

	materialsRecommendCmd.Flags().StringSlice("min", nil, "minimum requirement, property=value (repeatable)")
	materialsRecommendCmd.Flags().StringSlice("max", nil, "maximum requirement, property=value (repeatable)")
	materialsRecommendCmd.Flags().StringSlice("target", nil, "target requirement, property=value (repeatable)")
	materialsRecommendCmd.Flags().StringSlice("constraint", nil, "exclusion constraint, e.g. no_polymer (repeatable)")
	materialsRecommendCmd.Flags().Int("top", 5, "number of recommendations")
	materialsRecommendCmd.Flags().Bool("json", false, "output as JSON")

	materialsCompareCmd.Flags().StringSlice("property", nil, "properties to compare (default density, tensile_strength, cost_index)")
	materialsCompareCmd.Flags().Bool("json", false, "output as JSON")

	materialsListCmd.Flags().String("category", "", "filter by category (metal, composite, polymer)")
	materialsListCmd.Flags().Bool("json", false, "output as JSON")

	materialsCmd.AddCommand(materialsSearchCmd, materialsRecommendCmd, materialsCompareCmd, materialsListCmd)
	rootCmd.AddCommand(materialsCmd)
}
