// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/report"
	"github.com/pdiddy/triz-copilot/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "List, show, and clean up saved analyses",
}

// --- list subcommand ---

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, most recent first",
	RunE:  runSessionList,
}

func runSessionList(cmd *cobra.Command, args []string) error {
	mgr, err := openSessions()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	sessions, err := mgr.List(limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No saved sessions.")
		return nil
	}

	fmt.Printf("%-38s  %-17s  %-10s  %s\n", "ID", "Updated", "Stage", "Problem")
	fmt.Println(strings.Repeat("-", 110))
	for _, s := range sessions {
		problem := s.Problem
		if len(problem) > 40 {
			problem = problem[:37] + "..."
		}
		fmt.Printf("%-38s  %-17s  %-10s  %s\n",
			s.ID, s.UpdatedAt.Format("2006-01-02 15:04"), s.Stage, problem)
	}
	return nil
}

// --- show subcommand ---

var sessionShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a saved analysis in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	mgr, err := openSessions()
	if err != nil {
		return err
	}
	sess, err := mgr.Get(args[0])
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return printJSON(sess)
	}

	fmt.Printf("Session %s (stage: %s)\nCreated: %s\nUpdated: %s\n\n",
		sess.ID, sess.Stage,
		sess.CreatedAt.Format("2006-01-02 15:04"),
		sess.UpdatedAt.Format("2006-01-02 15:04"))

	if sess.Report == nil {
		fmt.Printf("Problem: %s\n\nNo research report recorded yet.\n", sess.Problem)
		return nil
	}

	concepts := sess.Solutions
	if concepts == nil {
		// Older sessions saved before the solutions stage still render.
		if base, err := knowledge.Load(); err == nil {
			concepts = report.Solutions(*sess.Report, base)
		}
	}
	return report.FormatMarkdown(os.Stdout, *sess.Report, concepts)
}

// --- delete subcommand ---

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openSessions()
		if err != nil {
			return err
		}
		if err := mgr.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted session %s\n", args[0])
		return nil
	},
}

// --- cleanup subcommand ---

var sessionCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove sessions older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openSessions()
		if err != nil {
			return err
		}
		days, _ := cmd.Flags().GetInt("days")
		if days <= 0 {
			days = pipelineConfig().Session.CleanupDays
		}
		removed, err := mgr.Cleanup(days)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d stale session(s)\n", removed)
		return nil
	},
}

func openSessions() (*session.Manager, error) {
	return session.NewManager(pipelineConfig().Session)
}

func init() {
	sessionListCmd.Flags().Int("limit", 20, "maximum sessions to list")
	sessionShowCmd.Flags().Bool("json", false, "output as JSON")
	sessionCleanupCmd.Flags().Int("days", 0, "retention in days (default from config, 30)")

	sessionCmd.AddCommand(sessionListCmd, sessionShowCmd, sessionDeleteCmd, sessionCleanupCmd)
	rootCmd.AddCommand(sessionCmd)
}
