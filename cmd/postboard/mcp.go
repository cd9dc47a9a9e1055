// ABOUTME: MCP server command implementation for postboard.
// ABOUTME: Starts the MCP server in stdio mode over one post store session.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "github.com/2389-research/postboard/internal/mcp"
)

var mcpFetch bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio and keeps one post session for its
lifetime, so posts added locally by an agent stay visible until it exits.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVar(&mcpFetch, "fetch", false, "Load the server's posts before serving")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if mcpFetch {
		globalPostStore.FetchPosts(ctx)
		if err := globalPostStore.Err(); err != nil {
			return err
		}
	}

	server, err := mcppkg.NewServer(globalPostStore, mcppkg.WithUserID(globalConfig.User.ID))
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
