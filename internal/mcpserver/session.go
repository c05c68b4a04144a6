// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/report"
	"github.com/pdiddy/triz-copilot/internal/session"
)

// SessionTool handles the triz_session_get MCP tool.
type SessionTool struct {
	sessions *session.Manager
}

// NewSessionTool creates a SessionTool.
func NewSessionTool(sessions *session.Manager) *SessionTool {
	return &SessionTool{sessions: sessions}
}

// Definition returns the MCP tool definition for triz_session_get.
func (t *SessionTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_session_get",
		mcp.WithDescription(
			"Retrieve a saved TRIZ analysis by session id, or list recent "+
				"sessions when no id is given.",
		),
		mcp.WithString("session_id",
			mcp.Description("Session id from a previous triz_solve run"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to list when no id is given (default 10)"),
		),
	)
}

// Handle processes the triz_session_get tool call.
func (t *SessionTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return t.list(intArg(req, "limit", 10))
	}

	sess, err := t.sessions.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %q: %v", id, err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session %s (stage: %s, updated %s)\n\nProblem: %s\n\n",
		sess.ID, sess.Stage, sess.UpdatedAt.Format("2006-01-02 15:04"), sess.Problem)
	if sess.Report != nil {
		if err := report.FormatMarkdown(&b, *sess.Report, sess.Solutions); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rendering report: %v", err)), nil
		}
	} else {
		b.WriteString("No research report recorded yet.\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (t *SessionTool) list(limit int) (*mcp.CallToolResult, error) {
	sessions, err := t.sessions.List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sessions: %v", err)), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No saved sessions. Run triz_solve to create one."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d recent sessions:\n\n", len(sessions))
	for _, s := range sessions {
		problem := s.Problem
		if len(problem) > 80 {
			problem = problem[:77] + "..."
		}
		fmt.Fprintf(&b, "- %s | %s | %s | %s\n",
			s.ID, s.UpdatedAt.Format("2006-01-02 15:04"), s.Stage, problem)
	}

	return mcp.NewToolResultText(b.String()), nil
}
