// ABOUTME: In-memory jsonplaceholder-compatible posts API built on gorilla/mux.
// ABOUTME: Mirrors the public service: creates are echoed with a new id but never persisted.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/2389-research/postboard/internal/models"
)

// DefaultSeed matches the number of posts jsonplaceholder serves.
const DefaultSeed = 100

// Server is a fake posts API. Its zero value is not usable; call New.
type Server struct {
	mu     sync.RWMutex
	posts  []models.Post
	router *mux.Router
	log    *slog.Logger
}

// New creates a fake API seeded with posts 1..seed.
func New(seed int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{log: logger}
	for i := 1; i <= seed; i++ {
		s.posts = append(s.posts, models.Post{
			ID:     i,
			UserID: (i-1)/10 + 1,
			Title:  fmt.Sprintf("post %d", i),
			Body:   fmt.Sprintf("body of post %d", i),
		})
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/posts", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/posts", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", s.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id:[0-9]+}", s.handleDelete).Methods(http.MethodDelete)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Posts returns a copy of the stored posts.
func (s *Server) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("fake api request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	posts := s.Posts()
	if v := r.URL.Query().Get("_limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < len(posts) {
			posts = posts[:n]
		}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		writeJSON(w, http.StatusOK, s.posts[i])
		return
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft models.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	next := 1
	for _, p := range s.posts {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusCreated, models.Post{
		ID:     next,
		UserID: draft.UserID,
		Title:  draft.Title,
		Body:   draft.Body,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	post.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		// jsonplaceholder fails this way for ids it never served.
		http.Error(w, fmt.Sprintf("TypeError: cannot read properties of undefined (reading 'id') for post %d", id), http.StatusInternalServerError)
		return
	}
	s.posts[i] = post
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, struct{}{})
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id int) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
