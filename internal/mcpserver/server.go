// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver wires the knowledge base, vector index, materials
// database, and research engine into an MCP server. This is the
// composition root: concrete dependencies are created here and
// injected into the tools, which depend on nothing else.
package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/pdiddy/triz-copilot/internal/embed"
	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/materials"
	"github.com/pdiddy/triz-copilot/internal/research"
	"github.com/pdiddy/triz-copilot/internal/session"
	"github.com/pdiddy/triz-copilot/internal/vector"
	"github.com/pdiddy/triz-copilot/internal/workflow"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New builds the MCP server with every tool registered. The returned
// cleanup function closes the underlying databases and must be called
// on shutdown; it is always non-nil.
func New(cfg types.PipelineConfig, log *zap.Logger) (*server.MCPServer, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}

	base, err := knowledge.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading knowledge base: %w", err)
	}

	index, err := vector.NewStore(cfg.Vector)
	if err != nil {
		return nil, noop, fmt.Errorf("opening vector index: %w", err)
	}

	matStore, err := materials.NewStore(cfg.Materials)
	if err != nil {
		index.Close()
		return nil, noop, fmt.Errorf("opening materials database: %w", err)
	}

	cleanup := func() {
		if err := matStore.Close(); err != nil {
			log.Warn("closing materials database", zap.Error(err))
		}
		if err := index.Close(); err != nil {
			log.Warn("closing vector index", zap.Error(err))
		}
	}

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("opening session store: %w", err)
	}

	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("selecting embedder: %w", err)
	}

	engine := research.NewEngine(embedder, index, cfg.Research, log)

	s := server.NewMCPServer(
		"triz-copilot",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	principleTool := NewPrincipleTool(base)
	s.AddTool(principleTool.Definition(), principleTool.Handle)

	matrixTool := NewMatrixTool(base)
	s.AddTool(matrixTool.Definition(), matrixTool.Handle)

	solveTool := NewSolveTool(engine, base, sessions)
	s.AddTool(solveTool.Definition(), solveTool.Handle)

	materialsTool := NewMaterialsTool(matStore)
	s.AddTool(materialsTool.Definition(), materialsTool.Handle)

	sessionTool := NewSessionTool(sessions)
	s.AddTool(sessionTool.Definition(), sessionTool.Handle)

	brainstormTool := NewBrainstormTool(base)
	s.AddTool(brainstormTool.Definition(), brainstormTool.Handle)

	guide := workflow.NewGuide(sessions, base)
	startTool := NewWorkflowStartTool(guide)
	s.AddTool(startTool.Definition(), startTool.Handle)
	continueTool := NewWorkflowContinueTool(guide)
	s.AddTool(continueTool.Definition(), continueTool.Handle)
	resetTool := NewWorkflowResetTool(guide)
	s.AddTool(resetTool.Definition(), resetTool.Handle)

	return s, cleanup, nil
}

// noop is the cleanup returned on construction failure.
func noop() {}

func serverInstructions() string {
	return `You have access to triz-copilot, a TRIZ innovation methodology server.

TRIZ resolves engineering contradictions (improving one parameter worsens
another) by applying 40 inventive principles drawn from patent analysis.

Tool guide:
- triz_solve: the main entry point. Pass the user's problem statement
  verbatim; the server researches its knowledge base, detects the
  contradictions, and returns evidence-linked solution concepts. Each
  run is saved as a session whose id appears in the output.
- triz_matrix_lookup: direct contradiction-matrix access when you
  already know the improving and worsening parameter numbers (1-39).
- triz_get_principle: full detail on one inventive principle (1-40),
  including sub-principles and cross-domain examples.
- triz_materials_search: engineering materials lookup by free text,
  for problems that need concrete material candidates.
- triz_session_get: retrieve a past analysis by id, or list recent ones.
- triz_brainstorm: generate application ideas for one inventive
  principle against a concrete context; principles are suggested from
  the context when no number is given.
- triz_workflow_start / triz_workflow_continue / triz_workflow_reset:
  a guided analysis that asks one question at a time (problem, ideal
  final result, contradiction, solution focus, evaluation). Use it when
  the user wants to be walked through the methodology instead of
  getting a one-shot answer.

Prefer triz_solve for open-ended problems. Quote its citations when
presenting solutions so the user can trace every claim to a source.`
}
