// ABOUTME: Interface definition for the remote posts API.
// ABOUTME: Defines the contract the post store uses to reach the server.
package storage

import (
	"context"

	"github.com/2389-research/postboard/internal/models"
)

// PostsAPI defines the remote operations on the posts resource.
type PostsAPI interface {
	// ListPosts returns every post the server knows about.
	ListPosts(ctx context.Context) ([]models.Post, error)

	// CreatePost persists a draft and returns it with the server-assigned id.
	CreatePost(ctx context.Context, draft models.Draft) (models.Post, error)

	// UpdatePost replaces the post with the given id and returns the server's copy.
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)

	// DeletePost removes the post with the given id.
	DeletePost(ctx context.Context, id int) error
}

var _ PostsAPI = (*RemoteClient)(nil)
