// ABOUTME: Tests for the fake posts API routes and status codes.
// ABOUTME: Verifies seeding, non-persisted creates, unknown-id updates, and deletes.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/postboard/internal/models"
)

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestListSeeded(t *testing.T) {
	s := New(DefaultSeed, nil)

	rec := do(t, s, "GET", "/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Len(t, posts, 100)
	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, 10, posts[99].UserID)
}

func TestListLimit(t *testing.T) {
	s := New(5, nil)

	rec := do(t, s, "GET", "/posts?_limit=1", "")
	var posts []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)
}

func TestCreateIsNotPersisted(t *testing.T) {
	s := New(DefaultSeed, nil)

	for i := 0; i < 2; i++ {
		rec := do(t, s, "POST", "/posts", `{"userId":1,"title":"New Post","body":"New Body"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, 101, created.ID)
		assert.Equal(t, "New Post", created.Title)
	}
	assert.Len(t, s.Posts(), 100)
}

func TestCreateMalformed(t *testing.T) {
	s := New(1, nil)
	rec := do(t, s, "POST", "/posts", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateKnownAndUnknown(t *testing.T) {
	s := New(3, nil)

	rec := do(t, s, "PUT", "/posts/2", `{"userId":1,"id":2,"title":"Updated Title","body":"Updated Body"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Updated Title", s.Posts()[1].Title)

	rec = do(t, s, "PUT", "/posts/101", `{"userId":1,"id":101,"title":"x","body":""}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetPost(t *testing.T) {
	s := New(3, nil)

	rec := do(t, s, "GET", "/posts/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, "GET", "/posts/30", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAlwaysOK(t *testing.T) {
	s := New(3, nil)

	rec := do(t, s, "DELETE", "/posts/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{}", strings.TrimSpace(rec.Body.String()))
	assert.Len(t, s.Posts(), 2)

	rec = do(t, s, "DELETE", "/posts/101", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNonNumericIDNotRouted(t *testing.T) {
	s := New(1, nil)
	rec := do(t, s, "GET", "/posts/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
