// ABOUTME: Unit tests for the post board bubbletea model.
// ABOUTME: Drives key messages and runs store commands synchronously against the fake API.
package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/postboard/internal/fakeapi"
	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/storage"
	"github.com/2389-research/postboard/internal/store"
)

func newTestBoard(t *testing.T, seed int, fetch bool, posts ...models.Post) (BoardModel, *fakeapi.Server) {
	t.Helper()
	api := fakeapi.New(seed, nil)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	s, err := store.New(storage.NewRemoteClient(srv.URL), store.WithPosts(posts...))
	if err != nil {
		t.Fatalf("store.New error: %v", err)
	}
	return NewBoardModel(context.Background(), s, 1, fetch), api
}

// press sends a key and, if it yields a store command, runs it and feeds
// the result back.
func press(t *testing.T, m BoardModel, key tea.KeyMsg) BoardModel {
	t.Helper()
	updated, cmd := m.Update(key)
	m = updated.(BoardModel)
	if cmd == nil {
		return m
	}
	if done, ok := cmd().(storeDoneMsg); ok {
		updated, _ = m.Update(done)
		m = updated.(BoardModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoard_InitFetches(t *testing.T) {
	m, _ := newTestBoard(t, 3, true)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected fetch cmd on init")
	}
	updated, _ := m.Update(cmd())
	m = updated.(BoardModel)

	if len(m.posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(m.posts))
	}
	if m.Err() != nil {
		t.Errorf("expected no error, got %v", m.Err())
	}
	if !strings.Contains(m.View(), "#1") {
		t.Error("expected post #1 in view")
	}
}

func TestBoard_KeysBlockedDuringInitialFetch(t *testing.T) {
	m, api := newTestBoard(t, 3, true)
	fetch := m.Init()

	updated, cmd := m.Update(runes("n"))
	m = updated.(BoardModel)
	if cmd != nil || m.mode != modeList {
		t.Fatal("expected add to be ignored while the initial fetch runs")
	}
	if !strings.Contains(m.View(), "refresh...") {
		t.Error("expected refresh status in view")
	}

	updated, _ = m.Update(fetch())
	m = updated.(BoardModel)
	if m.busy {
		t.Error("expected board idle after fetch")
	}
	if len(m.posts) != len(api.Posts()) {
		t.Errorf("expected %d posts, got %d", len(api.Posts()), len(m.posts))
	}

	m = press(t, m, runes("n"))
	if m.mode != modeForm {
		t.Error("expected form to open once the fetch landed")
	}
}

func TestBoard_InitWithoutFetch(t *testing.T) {
	m, _ := newTestBoard(t, 3, false)
	if m.Init() != nil {
		t.Error("expected no cmd when fetch is disabled")
	}
	if !strings.Contains(m.View(), "No posts.") {
		t.Error("expected empty board view")
	}
}

func TestBoard_AddPost(t *testing.T) {
	m, _ := newTestBoard(t, 3, false)

	m = press(t, m, runes("a"))
	if m.mode != modeForm {
		t.Fatalf("expected form mode after 'a', got %d", m.mode)
	}
	m.fields[0].SetValue("New Post")
	m.fields[1].SetValue("New Body")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeList {
		t.Errorf("expected list mode after submit, got %d", m.mode)
	}
	if len(m.posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(m.posts))
	}
	if m.posts[0].Title != "New Post" || m.posts[0].ID != 4 {
		t.Errorf("unexpected post: %+v", m.posts[0])
	}
	if !strings.Contains(m.View(), "add done") {
		t.Error("expected status in view")
	}
}

func TestBoard_AddRequiresTitle(t *testing.T) {
	m, _ := newTestBoard(t, 0, false)

	m = press(t, m, runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeForm {
		t.Error("expected to stay in form with empty title")
	}
	if !strings.Contains(m.View(), "title is required") {
		t.Error("expected title error in view")
	}
}

func TestBoard_AddLocalThenEdit(t *testing.T) {
	m, api := newTestBoard(t, 0, false)

	m = press(t, m, runes("n"))
	m.fields[0].SetValue("Local Post")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.posts) != 1 || m.posts[0].ID != 101 {
		t.Fatalf("expected local post 101, got %+v", m.posts)
	}
	if !strings.Contains(m.View(), "[local]") {
		t.Error("expected local badge in view")
	}

	m = press(t, m, runes("e"))
	if m.fields[0].Value() != "Local Post" {
		t.Errorf("expected form pre-filled, got %q", m.fields[0].Value())
	}
	m.fields[0].SetValue("Updated Local Title")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Err() != nil {
		t.Fatalf("expected no error, got %v", m.Err())
	}
	if m.posts[0].Title != "Updated Local Title" {
		t.Errorf("expected edited title, got %q", m.posts[0].Title)
	}
	if len(api.Posts()) != 0 {
		t.Error("expected server untouched by local edit")
	}
}

func TestBoard_DeleteAndCursor(t *testing.T) {
	m, api := newTestBoard(t, 3, true)
	updated, _ := m.Update(m.Init()())
	m = updated.(BoardModel)

	m = press(t, m, runes("j"))
	m = press(t, m, runes("j"))
	m = press(t, m, runes("j"))
	if m.cursor != 2 {
		t.Fatalf("expected cursor clamped at 2, got %d", m.cursor)
	}

	m = press(t, m, runes("d"))
	if len(m.posts) != 2 {
		t.Fatalf("expected 2 posts after delete, got %d", len(m.posts))
	}
	if m.cursor != 1 {
		t.Errorf("expected cursor moved to last post, got %d", m.cursor)
	}
	if len(api.Posts()) != 2 {
		t.Errorf("expected remote delete, server has %d posts", len(api.Posts()))
	}

	m = press(t, m, runes("k"))
	if m.cursor != 0 {
		t.Errorf("expected cursor 0 after k, got %d", m.cursor)
	}
}

func TestBoard_ErrorShown(t *testing.T) {
	// An untagged id the server never served, with the threshold raised so
	// the store treats it as remote: the fake API rejects the update.
	api := fakeapi.New(0, nil)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	s, _ := store.New(storage.NewRemoteClient(srv.URL),
		store.WithLocalIDThreshold(1000),
		store.WithPosts(models.Post{UserID: 1, ID: 101, Title: "Orphan"}))
	m := NewBoardModel(context.Background(), s, 1, false)

	m = press(t, m, runes("e"))
	m.fields[0].SetValue("Edited")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Err() == nil {
		t.Fatal("expected error from rejected update")
	}
	if !strings.Contains(m.View(), "✗") {
		t.Error("expected error marker in view")
	}
	if m.posts[0].Title != "Orphan" {
		t.Errorf("expected entry unchanged, got %q", m.posts[0].Title)
	}
}

func TestBoard_FormEscapeCancels(t *testing.T) {
	m, _ := newTestBoard(t, 0, false)

	m = press(t, m, runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.mode != modeList {
		t.Error("expected list mode after escape")
	}
}

func TestBoard_FormTabSwitchesField(t *testing.T) {
	m, _ := newTestBoard(t, 0, false)

	m = press(t, m, runes("a"))
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(BoardModel)
	if m.focus != 1 {
		t.Errorf("expected focus on body, got %d", m.focus)
	}
}

func TestBoard_Quit(t *testing.T) {
	m, _ := newTestBoard(t, 0, false)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Error("expected quit cmd")
	}
}
