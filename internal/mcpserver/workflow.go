// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/workflow"
)

// WorkflowStartTool handles the triz_workflow_start MCP tool.
type WorkflowStartTool struct {
	guide *workflow.Guide
}

// NewWorkflowStartTool creates a WorkflowStartTool.
func NewWorkflowStartTool(guide *workflow.Guide) *WorkflowStartTool {
	return &WorkflowStartTool{guide: guide}
}

// Definition returns the MCP tool definition for triz_workflow_start.
func (t *WorkflowStartTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_workflow_start",
		mcp.WithDescription(
			"Start a guided TRIZ analysis. The flow asks one question at a time: "+
				"problem, ideal final result, contradiction, solution focus, evaluation. "+
				"Returns a session id and the first question; answer with triz_workflow_continue.",
		),
		mcp.WithString("problem",
			mcp.Description("Optional problem statement, answered as the first question when given"),
		),
	)
}

// Handle processes the triz_workflow_start tool call.
func (t *WorkflowStartTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	step, err := t.guide.Start(req.GetString("problem", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(renderStep(step)), nil
}

// WorkflowContinueTool handles the triz_workflow_continue MCP tool.
type WorkflowContinueTool struct {
	guide *workflow.Guide
}

// NewWorkflowContinueTool creates a WorkflowContinueTool.
func NewWorkflowContinueTool(guide *workflow.Guide) *WorkflowContinueTool {
	return &WorkflowContinueTool{guide: guide}
}

// Definition returns the MCP tool definition for triz_workflow_continue.
func (t *WorkflowContinueTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_workflow_continue",
		mcp.WithDescription(
			"Answer the current question of a guided TRIZ analysis and receive the "+
				"next one, along with recommended principles and brainstormed directions "+
				"as the flow progresses.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Guided session id from triz_workflow_start"),
		),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("The user's answer to the current question"),
		),
	)
}

// Handle processes the triz_workflow_continue tool call.
func (t *WorkflowContinueTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	input := req.GetString("input", "")
	if id == "" || input == "" {
		return mcp.NewToolResultError("both 'session_id' and 'input' are required"), nil
	}
	step, err := t.guide.Continue(id, input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(renderStep(step)), nil
}

// WorkflowResetTool handles the triz_workflow_reset MCP tool.
type WorkflowResetTool struct {
	guide *workflow.Guide
}

// NewWorkflowResetTool creates a WorkflowResetTool.
func NewWorkflowResetTool(guide *workflow.Guide) *WorkflowResetTool {
	return &WorkflowResetTool{guide: guide}
}

// Definition returns the MCP tool definition for triz_workflow_reset.
func (t *WorkflowResetTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_workflow_reset",
		mcp.WithDescription("Return a guided TRIZ analysis to its first question, discarding answers."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Guided session id"),
		),
	)
}

// Handle processes the triz_workflow_reset tool call.
func (t *WorkflowResetTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	step, err := t.guide.Reset(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(renderStep(step)), nil
}

func renderStep(step workflow.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nStage: %s\n", step.SessionID, step.Stage)
	for _, note := range step.Notes {
		fmt.Fprintf(&b, "- %s\n", note)
	}
	fmt.Fprintf(&b, "\n%s\n", step.Prompt)
	return b.String()
}
