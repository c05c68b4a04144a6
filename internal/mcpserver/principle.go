// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
)

// PrincipleTool handles the triz_get_principle MCP tool.
type PrincipleTool struct {
	base *knowledge.Base
}

// NewPrincipleTool creates a PrincipleTool.
func NewPrincipleTool(base *knowledge.Base) *PrincipleTool {
	return &PrincipleTool{base: base}
}

// Definition returns the MCP tool definition for triz_get_principle.
func (t *PrincipleTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_get_principle",
		mcp.WithDescription(
			"Get full detail on one of the 40 TRIZ inventive principles: description, "+
				"sub-principles, cross-domain examples, and related principles.",
		),
		mcp.WithNumber("principle_id",
			mcp.Required(),
			mcp.Description("Principle number, 1 through 40"),
		),
	)
}

// Handle processes the triz_get_principle tool call.
func (t *PrincipleTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "principle_id", 0)
	p, ok := t.base.Principle(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no principle numbered %d; valid range is 1-40", id)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Principle %d: %s\n\n%s\n", p.ID, p.Name, p.Description)

	if len(p.SubPrinciples) > 0 {
		b.WriteString("\nSub-principles:\n")
		for _, sp := range p.SubPrinciples {
			fmt.Fprintf(&b, "- %s\n", sp)
		}
	}
	if len(p.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		for _, ex := range p.Examples {
			fmt.Fprintf(&b, "- %s\n", ex)
		}
	}
	if len(p.Domains) > 0 {
		fmt.Fprintf(&b, "\nCommon domains: %s\n", strings.Join(p.Domains, ", "))
	}
	if p.UsageFrequency != "" {
		fmt.Fprintf(&b, "Usage frequency: %s\n", p.UsageFrequency)
	}
	if len(p.RelatedPrinciples) > 0 {
		var names []string
		for _, rid := range p.RelatedPrinciples {
			if rp, ok := t.base.Principle(rid); ok {
				names = append(names, fmt.Sprintf("%d (%s)", rp.ID, rp.Name))
			}
		}
		fmt.Fprintf(&b, "Related principles: %s\n", strings.Join(names, ", "))
	}

	return mcp.NewToolResultText(b.String()), nil
}
