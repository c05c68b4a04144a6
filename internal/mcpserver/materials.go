// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/materials"
)

// MaterialsTool handles the triz_materials_search MCP tool.
type MaterialsTool struct {
	store *materials.Store
}

// NewMaterialsTool creates a MaterialsTool.
func NewMaterialsTool(store *materials.Store) *MaterialsTool {
	return &MaterialsTool{store: store}
}

// Definition returns the MCP tool definition for triz_materials_search.
func (t *MaterialsTool) Definition() mcp.Tool {
	return mcp.NewTool("triz_materials_search",
		mcp.WithDescription(
			"Search the engineering materials database by free text (names, "+
				"categories, advantages, applications). Use when a solution needs "+
				"concrete material candidates.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search terms, e.g. \"lightweight aircraft alloy\""),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default 5)"),
		),
	)
}

// Handle processes the triz_materials_search tool call.
func (t *MaterialsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	limit := intArg(req, "limit", 5)

	found, err := t.store.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("materials search failed: %v", err)), nil
	}
	if len(found) == 0 {
		return mcp.NewToolResultText("No materials matched. Try broader terms (e.g. a category: metal, composite, polymer)."), nil
	}
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d materials:\n\n", len(found))
	for _, m := range found {
		fmt.Fprintf(&b, "%s (%s, %s)\n", m.Name, m.ID, m.Category)
		if d, ok := m.Properties["density"]; ok {
			fmt.Fprintf(&b, "  density: %.2f g/cm3", d)
			if ts, ok := m.Properties["tensile_strength"]; ok {
				fmt.Fprintf(&b, " | tensile strength: %.0f MPa", ts)
			}
			b.WriteString("\n")
		}
		if len(m.Advantages) > 0 {
			fmt.Fprintf(&b, "  advantages: %s\n", strings.Join(m.Advantages, "; "))
		}
		if len(m.Applications) > 0 {
			fmt.Fprintf(&b, "  applications: %s\n", strings.Join(m.Applications, "; "))
		}
		fmt.Fprintf(&b, "  cost index: %.1f/10 | sustainability: %.1f\n\n", m.CostIndex, m.SustainabilityScore)
	}

	return mcp.NewToolResultText(b.String()), nil
}
