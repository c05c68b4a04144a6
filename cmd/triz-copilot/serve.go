// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/pdiddy/triz-copilot/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Serve exposes the TRIZ tools over the Model Context Protocol on stdio,
for use from AI coding assistants. Logging goes to stderr so the
transport on stdout stays clean.

Client configuration:

  {
    "mcpServers": {
      "triz-copilot": {
        "command": "triz-copilot",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	mcpserver.Version = version

	s, cleanup, err := mcpserver.New(pipelineConfig(), logger)
	if err != nil {
		return fmt.Errorf("building MCP server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}
