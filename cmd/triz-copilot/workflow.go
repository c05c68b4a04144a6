// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/workflow"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Guided analysis, one question at a time",
	Long: `Walk through the methodology step by step: problem definition, ideal
final result, contradiction analysis, principle selection, solution
generation, and evaluation. Progress is saved between invocations, so
each answer can be given in a separate run.`,
}

var workflowStartCmd = &cobra.Command{
	Use:   "start [problem...]",
	Short: "Start a guided analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		guide, err := openGuide()
		if err != nil {
			return err
		}
		step, err := guide.Start(strings.Join(args, " "))
		if err != nil {
			return err
		}
		printStep(step)
		return nil
	},
}

var workflowContinueCmd = &cobra.Command{
	Use:   "continue [id] [answer...]",
	Short: "Answer the current question and advance",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		guide, err := openGuide()
		if err != nil {
			return err
		}
		step, err := guide.Continue(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		printStep(step)
		return nil
	},
}

var workflowStatusCmd = &cobra.Command{
	Use:   "status [id]",
	Short: "Show where a guided analysis stands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guide, err := openGuide()
		if err != nil {
			return err
		}
		step, err := guide.Status(args[0])
		if err != nil {
			return err
		}
		printStep(step)
		return nil
	},
}

var workflowResetCmd = &cobra.Command{
	Use:   "reset [id]",
	Short: "Return a guided analysis to its first question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guide, err := openGuide()
		if err != nil {
			return err
		}
		step, err := guide.Reset(args[0])
		if err != nil {
			return err
		}
		printStep(step)
		return nil
	},
}

func openGuide() (*workflow.Guide, error) {
	base, err := knowledge.Load()
	if err != nil {
		return nil, err
	}
	mgr, err := openSessions()
	if err != nil {
		return nil, err
	}
	return workflow.NewGuide(mgr, base), nil
}

func printStep(step workflow.Step) {
	fmt.Printf("Session: %s\nStage:   %s\n", step.SessionID, step.Stage)
	if len(step.Notes) > 0 {
		fmt.Println()
		for _, note := range step.Notes {
			fmt.Printf("- %s\n", note)
		}
	}
	fmt.Printf("\n%s\n", step.Prompt)
	if !step.Completed {
		fmt.Printf("\nAnswer with: triz-copilot workflow continue %s \"...\"\n", step.SessionID)
	}
}

func init() {
	workflowCmd.AddCommand(workflowStartCmd, workflowContinueCmd, workflowStatusCmd, workflowResetCmd)
	rootCmd.AddCommand(workflowCmd)
}
