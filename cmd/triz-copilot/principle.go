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
)

var principleCmd = &cobra.Command{
	Use:   "principle [number]",
	Short: "Show a TRIZ inventive principle, or list all 40",
	Long: `Principle prints one of the 40 inventive principles in full: its
description, sub-principles, examples, and related principles. With no
argument it lists all principles in a table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrinciple,
}

func init() {
	principleCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(principleCmd)
}

func runPrinciple(cmd *cobra.Command, args []string) error {
	base, err := knowledge.Load()
	if err != nil {
		return err
	}
	jsonOut, _ := cmd.Flags().GetBool("json")

	if len(args) == 0 {
		return listPrinciples(base, jsonOut)
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("principle number must be an integer, got %q", args[0])
	}
	p, ok := base.Principle(id)
	if !ok {
		return fmt.Errorf("no principle numbered %d; valid range is 1-40", id)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Printf("Principle %d: %s\n\n%s\n", p.ID, p.Name, p.Description)
	if len(p.SubPrinciples) > 0 {
		fmt.Println("\nSub-principles:")
		for _, sp := range p.SubPrinciples {
			fmt.Printf("  - %s\n", sp)
		}
	}
	if len(p.Examples) > 0 {
		fmt.Println("\nExamples:")
		for _, ex := range p.Examples {
			fmt.Printf("  - %s\n", ex)
		}
	}
	if len(p.Domains) > 0 {
		fmt.Printf("\nDomains: %s\n", strings.Join(p.Domains, ", "))
	}
	if len(p.RelatedPrinciples) > 0 {
		var names []string
		for _, rid := range p.RelatedPrinciples {
			if rp, ok := base.Principle(rid); ok {
				names = append(names, fmt.Sprintf("%d (%s)", rp.ID, rp.Name))
			}
		}
		fmt.Printf("Related: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func listPrinciples(base *knowledge.Base, jsonOut bool) error {
	all := base.Principles()
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	fmt.Printf("%-4s  %-35s  %s\n", "No.", "Name", "Usage")
	fmt.Println(strings.Repeat("-", 55))
	for _, p := range all {
		fmt.Printf("%-4d  %-35s  %s\n", p.ID, p.Name, p.UsageFrequency)
	}
	return nil
}
