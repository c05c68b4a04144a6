// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
)

// MatrixTool handles the triz_matrix_lookup MCP tool.
type MatrixTool struct {
	base *knowledge.Base
}

// NewMatrixTool creates a MatrixTool.
func NewMatrixTool(base *knowledge.Base) *MatrixTool {
	return &MatrixTool{base: base}
}

// Definition returns the MCP tool definition for triz_matrix_lookup.
func (t *MatrixTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_matrix_lookup",
		mcp.WithDescription(
			"Look up the TRIZ contradiction matrix. Pass improving and worsening "+
				"engineering parameter numbers (1-39), or pass a free-text problem "+
				"statement to have the contradictions extracted automatically.",
		),
		mcp.WithNumber("improving",
			mcp.Description("Parameter being improved (1-39)"),
		),
		mcp.WithNumber("worsening",
			mcp.Description("Parameter that degrades as a consequence (1-39)"),
		),
		mcp.WithString("problem",
			mcp.Description("Free-text problem statement, used when parameter numbers are omitted"),
		),
	)
}

// Handle processes the triz_matrix_lookup tool call.
func (t *MatrixTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	improving := intArg(req, "improving", 0)
	worsening := intArg(req, "worsening", 0)
	problem := req.GetString("problem", "")

	var pairs [][2]int
	switch {
	case improving > 0 && worsening > 0:
		pairs = [][2]int{{improving, worsening}}
	case problem != "":
		pairs = knowledge.ContradictionsFromText(problem)
		if len(pairs) == 0 {
			return mcp.NewToolResultText(
				"No contradiction detected in the problem text. " +
					"State it as a trade-off (e.g. \"improve strength without increasing weight\") " +
					"or pass parameter numbers directly."), nil
		}
	default:
		return mcp.NewToolResultError("pass either 'improving' and 'worsening' numbers or a 'problem' text"), nil
	}

	var b strings.Builder
	for _, pair := range pairs {
		entry, err := t.base.Lookup(pair[0], pair[1])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		imp, _ := t.base.Parameter(entry.Improving)
		wor, _ := t.base.Parameter(entry.Worsening)
		fmt.Fprintf(&b, "Improving %q while %q worsens:\n", imp.Name, wor.Name)
		for _, id := range entry.Principles {
			if p, ok := t.base.Principle(id); ok {
				fmt.Fprintf(&b, "- Principle %d: %s — %s\n", p.ID, p.Name, p.Description)
			}
		}
		fmt.Fprintf(&b, "Confidence: %.2f", entry.Confidence)
		if entry.Applications > 0 {
			fmt.Fprintf(&b, " (%d known applications)", entry.Applications)
		}
		b.WriteString("\n\n")
	}

	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n") + "\n"), nil
}
