// ABOUTME: MCP server initialization and configuration for postboard.
// ABOUTME: Exposes one post store session to AI agents as MCP tools.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/store"
)

// Server wraps the MCP server around a post store session.
type Server struct {
	mcp    *gomcp.Server
	posts  *store.PostStore
	userID int
}

// ServerOption configures optional Server settings.
type ServerOption func(*Server)

// WithUserID sets the author id used when a tool call omits one.
func WithUserID(id int) ServerOption {
	return func(s *Server) {
		if id > 0 {
			s.userID = id
		}
	}
}

// NewServer creates an MCP server with post tools over the given store.
func NewServer(posts *store.PostStore, opts ...ServerOption) (*Server, error) {
	if posts == nil {
		return nil, fmt.Errorf("post store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "postboard",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		posts:  posts,
		userID: 1,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerPostTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
