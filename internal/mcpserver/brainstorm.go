// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/report"
)

// BrainstormTool handles the triz_brainstorm MCP tool.
type BrainstormTool struct {
	base *knowledge.Base
}

// NewBrainstormTool creates a BrainstormTool.
func NewBrainstormTool(base *knowledge.Base) *BrainstormTool {
	return &BrainstormTool{base: base}
}

// Definition returns the MCP tool definition for triz_brainstorm.
func (t *BrainstormTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_brainstorm",
		mcp.WithDescription(
			"Brainstorm applications of an inventive principle to a concrete context. "+
				"Pass a principle number (1-40), or omit it to have principles suggested "+
				"from the context's contradictions.",
		),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("The concrete problem or system to brainstorm against"),
		),
		mcp.WithNumber("principle_number",
			mcp.Description("Inventive principle to apply (1-40); suggested automatically when omitted"),
		),
	)
}

// Handle processes the triz_brainstorm tool call.
func (t *BrainstormTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("context", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'context' is required"), nil
	}

	var b strings.Builder
	id := intArg(req, "principle_number", 0)
	if id == 0 {
		suggested := report.SuggestPrinciples(t.base, text, 5)
		if len(suggested) == 0 {
			return mcp.NewToolResultError("no principle could be suggested; pass 'principle_number'"), nil
		}
		id = suggested[0]
		b.WriteString("Suggested principles: ")
		for i, s := range suggested {
			if i > 0 {
				b.WriteString(", ")
			}
			if p, ok := t.base.Principle(s); ok {
				fmt.Fprintf(&b, "%d (%s)", p.ID, p.Name)
			}
		}
		b.WriteString("\n\n")
	}

	ideas, err := report.Brainstorm(t.base, id, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for i, idea := range ideas {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, idea.Title, idea.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}
