// ABOUTME: HTTP client for the remote posts REST resource.
// ABOUTME: Creates, reads, updates, and deletes posts against a jsonplaceholder-style API.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/postboard/internal/models"
)

// DefaultBaseURL is the public jsonplaceholder endpoint.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// APIError is returned when the remote API answers with a status >= 400.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// RemoteClient talks to the posts resource of a remote API.
type RemoteClient struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// ClientOption configures optional RemoteClient settings.
type ClientOption func(*RemoteClient)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(r *RemoteClient) {
		if h != nil {
			r.client = h
		}
	}
}

// WithTimeout sets the per-request timeout. A client supplied through
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) ClientOption {
	return func(r *RemoteClient) {
		if d > 0 {
			c := *r.client
			c.Timeout = d
			r.client = &c
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(r *RemoteClient) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRemoteClient creates a client for the API rooted at baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewRemoteClient(baseURL string, opts ...ClientOption) *RemoteClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	baseURL = strings.TrimSuffix(baseURL, "/posts")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	r := &RemoteClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaseURL returns the normalized API root.
func (r *RemoteClient) BaseURL() string {
	return r.baseURL
}

// ListPosts fetches every post from GET /posts.
func (r *RemoteClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a single post from GET /posts/{id}.
func (r *RemoteClient) GetPost(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	if err := r.do(ctx, http.MethodGet, postPath(id), nil, &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// CreatePost sends a draft to POST /posts and returns the post with its assigned id.
func (r *RemoteClient) CreatePost(ctx context.Context, draft models.Draft) (models.Post, error) {
	var created models.Post
	if err := r.do(ctx, http.MethodPost, "/posts", draft, &created); err != nil {
		return models.Post{}, err
	}
	if created.ID == 0 {
		return models.Post{}, fmt.Errorf("remote API returned a post without an id")
	}
	return created, nil
}

// UpdatePost sends the full post to PUT /posts/{id} and returns the server's copy.
// Fields the server omits are filled in from the given post.
func (r *RemoteClient) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	var updated models.Post
	if err := r.do(ctx, http.MethodPut, postPath(post.ID), post, &updated); err != nil {
		return models.Post{}, err
	}
	if updated.ID == 0 {
		updated.ID = post.ID
	}
	if updated.UserID == 0 {
		updated.UserID = post.UserID
	}
	if updated.Title == "" && updated.Body == "" {
		updated.Title = post.Title
		updated.Body = post.Body
	}
	return updated, nil
}

// DeletePost removes a post with DELETE /posts/{id}.
func (r *RemoteClient) DeletePost(ctx context.Context, id int) error {
	return r.do(ctx, http.MethodDelete, postPath(id), nil, nil)
}

// Ping checks that the API answers GET /posts with a one-item probe.
func (r *RemoteClient) Ping(ctx context.Context) error {
	return r.do(ctx, http.MethodGet, "/posts?_limit=1", nil, nil)
}

func postPath(id int) string {
	return "/posts/" + strconv.Itoa(id)
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (r *RemoteClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debug("remote request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("remote API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	r.log.Debug("remote request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
