// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/embed"
	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/report"
	"github.com/pdiddy/triz-copilot/internal/research"
	"github.com/pdiddy/triz-copilot/internal/session"
	"github.com/pdiddy/triz-copilot/internal/vector"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

var solveCmd = &cobra.Command{
	Use:   "solve [problem]",
	Short: "Research a problem and synthesize solution concepts",
	Long: `Solve runs the full research pipeline against a problem statement:
query planning, multi-collection vector search, gap-driven refinement,
and synthesis into evidence-linked solution concepts. The analysis is
saved as a session for later retrieval.

Run "ingest" first so the vector index has content to search.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().Bool("json", false, "output the report and solutions as JSON")
	solveCmd.Flags().Bool("no-session", false, "do not persist the analysis")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	problem := strings.Join(args, " ")
	cfg := pipelineConfig()

	base, err := knowledge.Load()
	if err != nil {
		return err
	}

	index, err := vector.NewStore(cfg.Vector)
	if err != nil {
		return err
	}
	defer index.Close()

	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		return err
	}

	engine := research.NewEngine(embedder, index, cfg.Research, logger)
	r, err := engine.Research(context.Background(), problem)
	if err != nil {
		return err
	}

	concepts := report.Solutions(r, base)

	noSession, _ := cmd.Flags().GetBool("no-session")
	if !noSession {
		if err := saveSolveSession(cfg, problem, &r, concepts); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: session not saved: %v\n", err)
		}
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return report.FormatJSON(os.Stdout, r, concepts)
	}
	return report.FormatMarkdown(os.Stdout, r, concepts)
}

func saveSolveSession(cfg types.PipelineConfig, problem string, r *types.ResearchReport, concepts []types.SolutionConcept) error {
	mgr, err := session.NewManager(cfg.Session)
	if err != nil {
		return err
	}
	sess, err := mgr.Create(problem)
	if err != nil {
		return err
	}
	sess.Stage = session.StageSolutions
	sess.Report = r
	sess.Solutions = concepts
	if err := mgr.Save(sess); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Session saved: %s\n", sess.ID)
	return nil
}
