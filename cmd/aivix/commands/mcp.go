// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents process utterances and browse the catalog via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aivix/bench/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs aivix as an MCP (Model Context Protocol) server over stdio, so
LLM agents can route utterances, browse and annotate the block
catalog, and ask for block suggestions.

Tools: process_utterance, list_blocks, get_block,
update_block_metadata, suggest_blocks.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  aivix mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "aivix": {
  #       "command": "aivix",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"aivix",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, a.store, a.pipeline, a.advisor, a.logger)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("MCP server starting on stdio", zap.String("db", a.store.Path()))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received, closing catalog")
		a.Close()

	case err := <-serverErr:
		a.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
