// ABOUTME: MCP tool implementations for post store operations.
// ABOUTME: Registers list, fetch, add, add-local, edit, and delete post tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/models"
)

func (s *Server) registerPostTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_posts",
		Description: "List the posts held in this session, in order, with their origin.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "fetch_posts",
		Description: "Replace the session's posts with every post on the server.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleFetchPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_post",
		Description: "Create a post on the server and add it to the session.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Post title.", "minLength": 1},
				"body": {"type": "string", "description": "Post body."},
				"user_id": {"type": "number", "description": "Author id (defaults to the configured user)"}
			},
			"required": ["title"]
		}`),
	}, s.handleAddPost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_local_post",
		Description: "Add a post to the session only, without contacting the server.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Post title.", "minLength": 1},
				"body": {"type": "string", "description": "Post body."},
				"user_id": {"type": "number", "description": "Author id (defaults to the configured user)"}
			},
			"required": ["title"]
		}`),
	}, s.handleAddLocalPost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "edit_post",
		Description: "Edit a post. Server-backed posts are updated remotely; local posts in place.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "number", "description": "Id of the post to edit."},
				"title": {"type": "string", "description": "New title (keeps the current one if empty)"},
				"body": {"type": "string", "description": "New body (keeps the current one if omitted)"}
			},
			"required": ["id"]
		}`),
	}, s.handleEditPost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete a post. Server-backed posts are deleted remotely; local posts in place.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "number", "description": "Id of the post to delete."}
			},
			"required": ["id"]
		}`),
	}, s.handleDeletePost)
}

func (s *Server) handleListPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	return textResult(formatPosts(s.posts.Posts())), nil
}

func (s *Server) handleFetchPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s.posts.FetchPosts(ctx)
	if err := s.posts.Err(); err != nil {
		return toolError("failed to fetch posts: %v", err), nil
	}
	return textResult(fmt.Sprintf("Fetched %d posts", s.posts.Len())), nil
}

type draftArgs struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"user_id"`
}

func (s *Server) parseDraft(req *gomcp.CallToolRequest) (models.Draft, *gomcp.CallToolResult) {
	var args draftArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return models.Draft{}, toolError("invalid arguments: %v", err)
	}
	if strings.TrimSpace(args.Title) == "" {
		return models.Draft{}, toolError("title is required")
	}
	if args.UserID <= 0 {
		args.UserID = s.userID
	}
	draft := models.NewDraft(args.UserID, args.Title, args.Body)
	if err := draft.Validate(); err != nil {
		return models.Draft{}, toolError("%v", err)
	}
	return draft, nil
}

func (s *Server) handleAddPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	draft, errResult := s.parseDraft(req)
	if errResult != nil {
		return errResult, nil
	}

	before := s.posts.Len()
	s.posts.AddPost(ctx, draft)
	if err := s.posts.Err(); err != nil {
		return toolError("failed to add post: %v", err), nil
	}

	posts := s.posts.Posts()
	if len(posts) == before {
		return toolError("post was not added"), nil
	}
	added := posts[len(posts)-1]
	return textResult(fmt.Sprintf("Post added (ID: %d, %s)", added.ID, added.Origin)), nil
}

func (s *Server) handleAddLocalPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	draft, errResult := s.parseDraft(req)
	if errResult != nil {
		return errResult, nil
	}

	post := s.posts.AddLocalPost(draft)
	return textResult(fmt.Sprintf("Local post added (ID: %d)", post.ID)), nil
}

func (s *Server) handleEditPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID    int     `json:"id"`
		Title string  `json:"title"`
		Body  *string `json:"body"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	post, ok := s.posts.Post(args.ID)
	if !ok {
		return toolError("post %d not found", args.ID), nil
	}
	if strings.TrimSpace(args.Title) != "" {
		post.Title = strings.TrimSpace(args.Title)
	}
	if args.Body != nil {
		post.Body = *args.Body
	}
	if err := post.Validate(); err != nil {
		return toolError("%v", err), nil
	}

	s.posts.EditPost(ctx, post)
	if err := s.posts.Err(); err != nil {
		return toolError("failed to edit post: %v", err), nil
	}
	return textResult(fmt.Sprintf("Post %d updated", args.ID)), nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if _, ok := s.posts.Post(args.ID); !ok {
		return toolError("post %d not found", args.ID), nil
	}

	s.posts.DeletePost(ctx, args.ID)
	if err := s.posts.Err(); err != nil {
		return toolError("failed to delete post: %v", err), nil
	}
	return textResult(fmt.Sprintf("Post %d deleted", args.ID)), nil
}

func formatPosts(posts []models.Post) string {
	if len(posts) == 0 {
		return "No posts found."
	}
	var sb strings.Builder
	for _, p := range posts {
		sb.WriteString(fmt.Sprintf("---\n#%d by user %d [%s]\n%s\n", p.ID, p.UserID, p.Origin, p.Title))
		if p.Body != "" {
			sb.WriteString(p.Body + "\n")
		}
	}
	return sb.String()
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
