// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/report"
)

var brainstormCmd = &cobra.Command{
	Use:   "brainstorm [context...]",
	Short: "Brainstorm principle applications for a concrete context",
	Long: `Generate application ideas for one inventive principle against a
concrete problem or system. Pass --principle to pick the principle;
without it, principles are suggested from the contradictions in the
context text and the strongest suggestion is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBrainstorm,
}

func runBrainstorm(cmd *cobra.Command, args []string) error {
	base, err := knowledge.Load()
	if err != nil {
		return err
	}
	context := strings.Join(args, " ")

	id, _ := cmd.Flags().GetInt("principle")
	if id == 0 {
		suggested := report.SuggestPrinciples(base, context, 5)
		if len(suggested) == 0 {
			return fmt.Errorf("no principle could be suggested; pass --principle")
		}
		id = suggested[0]
		fmt.Print("Suggested principles:")
		for _, s := range suggested {
			if p, ok := base.Principle(s); ok {
				fmt.Printf(" %d (%s)", p.ID, p.Name)
			}
		}
		fmt.Print("\n\n")
	}

	ideas, err := report.Brainstorm(base, id, context)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(ideas)
	}
	for i, idea := range ideas {
		fmt.Printf("%d. %s\n   %s\n", i+1, idea.Title, idea.Description)
	}
	return nil
}

func init() {
	brainstormCmd.Flags().Int("principle", 0, "inventive principle to apply (1-40)")
	brainstormCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(brainstormCmd)
}
