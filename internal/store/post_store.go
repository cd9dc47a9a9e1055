// ABOUTME: Session-scoped post store synchronized opportunistically with the posts API.
// ABOUTME: Remote-backed posts go through the API; local-only posts are changed in place.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/storage"
)

// DefaultLocalIDThreshold is the first id treated as local-only when a post
// carries no origin tag. jsonplaceholder serves ids 1..100 and answers every
// create with 101 without persisting it.
const DefaultLocalIDThreshold = 101

// PostStore holds an ordered collection of posts and the error of the last
// operation. Network calls run outside the lock; overlapping edits of the
// same id are not coordinated and the last commit wins.
type PostStore struct {
	api       storage.PostsAPI
	threshold int
	log       *slog.Logger

	mu    sync.RWMutex
	posts []models.Post
	err   error
}

// Option configures optional PostStore settings.
type Option func(*PostStore)

// WithLocalIDThreshold sets the id from which untagged posts are local-only.
func WithLocalIDThreshold(id int) Option {
	return func(s *PostStore) {
		if id > 0 {
			s.threshold = id
		}
	}
}

// WithLogger sets the logger for store events.
func WithLogger(l *slog.Logger) Option {
	return func(s *PostStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPosts seeds the store with an initial collection.
func WithPosts(posts ...models.Post) Option {
	return func(s *PostStore) {
		s.posts = dedupe(posts)
	}
}

// New creates a post store backed by the given API.
func New(api storage.PostsAPI, opts ...Option) (*PostStore, error) {
	if api == nil {
		return nil, fmt.Errorf("posts API is required")
	}
	s := &PostStore{
		api:       api,
		threshold: DefaultLocalIDThreshold,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Posts returns a copy of the collection in insertion order.
func (s *PostStore) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

// Post returns the post with the given id.
func (s *PostStore) Post(id int) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.posts[i], true
	}
	return models.Post{}, false
}

// Len returns the number of posts held.
func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Err returns the error recorded by the last operation, or nil.
func (s *PostStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ClearError resets the error slot.
func (s *PostStore) ClearError() {
	s.setErr(nil)
}

// SetPosts replaces the collection. Later duplicates of an id are dropped.
func (s *PostStore) SetPosts(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = dedupe(posts)
}

// Threshold returns the id from which untagged posts are local-only.
func (s *PostStore) Threshold() int {
	return s.threshold
}

// IsLocal reports whether a post exists only in client state. An explicit
// origin decides; untagged posts are classified by the id threshold.
func (s *PostStore) IsLocal(p models.Post) bool {
	switch p.Origin {
	case models.OriginLocal:
		return true
	case models.OriginRemote:
		return false
	default:
		return p.ID >= s.threshold
	}
}

// FetchPosts replaces the collection with every post on the server.
func (s *PostStore) FetchPosts(ctx context.Context) {
	posts, err := s.api.ListPosts(ctx)
	if err != nil {
		s.fail("fetch posts", err)
		return
	}
	for i := range posts {
		posts[i].Origin = models.OriginRemote
	}

	s.mu.Lock()
	s.posts = dedupe(posts)
	s.err = nil
	n := len(s.posts)
	s.mu.Unlock()

	s.log.Info("fetched posts", "count", n)
}

// AddPost creates the draft on the server and appends the returned post.
// On failure the collection is left unchanged and the error is recorded.
func (s *PostStore) AddPost(ctx context.Context, draft models.Draft) {
	created, err := s.api.CreatePost(ctx, draft)
	if err != nil {
		s.fail("add post", err)
		return
	}
	created.Origin = models.OriginRemote
	if created.ID >= s.threshold {
		created.Origin = models.OriginLocal
	}

	s.mu.Lock()
	if s.indexOf(created.ID) >= 0 {
		// The server handed back an id we already hold; it did not persist a
		// distinct record, so keep the post client-side under a fresh id.
		prev := created.ID
		created.ID = s.nextLocalID()
		created.Origin = models.OriginLocal
		s.log.Warn("server returned duplicate id", "id", prev, "local_id", created.ID)
	}
	s.posts = append(s.posts, created)
	s.err = nil
	s.mu.Unlock()

	s.log.Info("added post", "id", created.ID, "origin", created.Origin)
}

// AddLocalPost appends a local-only post without contacting the server and
// returns it with its assigned id.
func (s *PostStore) AddLocalPost(draft models.Draft) models.Post {
	s.mu.Lock()
	post := models.NewLocalPost(s.nextLocalID(), draft)
	s.posts = append(s.posts, post)
	s.err = nil
	s.mu.Unlock()

	s.log.Info("added local post", "id", post.ID)
	return post
}

// EditPost replaces the entry with the post's id. Remote-backed entries are
// updated on the server first; local-only entries are replaced directly.
// Editing an id that is not held is a no-op.
func (s *PostStore) EditPost(ctx context.Context, post models.Post) {
	current, ok := s.Post(post.ID)
	if !ok {
		s.log.Debug("edit of unknown post ignored", "id", post.ID)
		return
	}

	if s.IsLocal(current) {
		post.Origin = models.OriginLocal
		s.commitReplace(post)
		s.log.Info("edited local post", "id", post.ID)
		return
	}

	updated, err := s.api.UpdatePost(ctx, post)
	if err != nil {
		s.fail("edit post", err)
		return
	}
	updated.ID = post.ID
	updated.Origin = models.OriginRemote
	s.commitReplace(updated)
	s.log.Info("edited post", "id", post.ID)
}

// DeletePost removes the entry with the given id. Remote-backed entries are
// deleted on the server first; local-only entries are removed directly.
// Deleting an id that is not held is a no-op.
func (s *PostStore) DeletePost(ctx context.Context, id int) {
	current, ok := s.Post(id)
	if !ok {
		s.log.Debug("delete of unknown post ignored", "id", id)
		return
	}

	if !s.IsLocal(current) {
		if err := s.api.DeletePost(ctx, id); err != nil {
			s.fail("delete post", err)
			return
		}
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.posts = slices.Delete(s.posts, i, i+1)
	}
	s.err = nil
	s.mu.Unlock()

	s.log.Info("deleted post", "id", id, "origin", current.Origin)
}

func (s *PostStore) commitReplace(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(p.ID); i >= 0 {
		s.posts[i] = p
	}
	s.err = nil
}

func (s *PostStore) fail(op string, err error) {
	err = fmt.Errorf("%s: %w", op, err)
	s.setErr(err)
	s.log.Warn("operation failed", "op", op, "error", err)
}

func (s *PostStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// indexOf must be called with s.mu held.
func (s *PostStore) indexOf(id int) int {
	return slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == id })
}

// nextLocalID must be called with s.mu held.
func (s *PostStore) nextLocalID() int {
	next := s.threshold
	for _, p := range s.posts {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func dedupe(posts []models.Post) []models.Post {
	seen := make(map[int]bool, len(posts))
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
