// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/report"
	"github.com/pdiddy/triz-copilot/internal/research"
	"github.com/pdiddy/triz-copilot/internal/session"
)

// SolveTool handles the triz_solve MCP tool: it runs the research
// pipeline against the problem statement, derives solution concepts,
// and persists the analysis as a session.
type SolveTool struct {
	engine   *research.Engine
	base     *knowledge.Base
	sessions *session.Manager
}

// NewSolveTool creates a SolveTool.
func NewSolveTool(engine *research.Engine, base *knowledge.Base, sessions *session.Manager) *SolveTool {
	return &SolveTool{engine: engine, base: base, sessions: sessions}
}

// Definition returns the MCP tool definition for triz_solve.
func (t *SolveTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_solve",
		mcp.WithDescription(
			"Analyze an engineering problem with TRIZ: research the knowledge base, "+
				"identify contradictions and applicable inventive principles, and return "+
				"evidence-linked solution concepts. The analysis is saved as a session.",
		),
		mcp.WithString("problem",
			mcp.Required(),
			mcp.Description("The problem statement, stated as concretely as possible"),
		),
	)
}

// Handle processes the triz_solve tool call.
func (t *SolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	problem := req.GetString("problem", "")

	r, err := t.engine.Research(ctx, problem)
	if err != nil {
		if errors.Is(err, research.ErrInvalidInput) {
			return mcp.NewToolResultError("'problem' must be a non-empty statement"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("research failed: %v", err)), nil
	}

	concepts := report.Solutions(r, t.base)

	sess, err := t.sessions.Create(problem)
	if err == nil {
		sess.Stage = session.StageSolutions
		sess.Report = &r
		sess.Solutions = concepts
		err = t.sessions.Save(sess)
	}

	var b strings.Builder
	if ferr := report.FormatMarkdown(&b, r, concepts); ferr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering report: %v", ferr)), nil
	}
	if err != nil {
		// A failed save degrades to an unsaved analysis, not an error.
		fmt.Fprintf(&b, "\n_(session not saved: %v)_\n", err)
	} else {
		fmt.Fprintf(&b, "\nSession id: %s\n", sess.ID)
	}

	return mcp.NewToolResultText(b.String()), nil
}
