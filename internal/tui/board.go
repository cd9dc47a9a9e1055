// ABOUTME: Interactive bubbletea board over one post store session.
// ABOUTME: Lists posts and runs add, edit, delete, and refresh as async store commands.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/store"
)

type boardMode int

const (
	modeList boardMode = iota
	modeForm
)

type formKind int

const (
	formAdd formKind = iota
	formAddLocal
	formEdit
)

// storeDoneMsg reports that an async store operation finished.
type storeDoneMsg struct {
	action string
	err    error
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	localStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// BoardModel is the bubbletea model for the post board.
type BoardModel struct {
	ctx    context.Context
	store  *store.PostStore
	userID int
	fetch  bool

	posts  []models.Post
	cursor int
	mode   boardMode

	kind      formKind
	editingID int
	fields    [2]textinput.Model
	focus     int

	busy   bool
	status string
	err    error
}

// NewBoardModel creates a board over the given store. When fetch is true the
// board loads the server's posts on start.
func NewBoardModel(ctx context.Context, s *store.PostStore, userID int, fetch bool) BoardModel {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Width = 60
	title.CharLimit = 200

	body := textinput.New()
	body.Placeholder = "Body"
	body.Width = 60

	if userID < 1 {
		userID = 1
	}
	m := BoardModel{
		ctx:    ctx,
		store:  s,
		userID: userID,
		fetch:  fetch,
		posts:  s.Posts(),
		fields: [2]textinput.Model{title, body},
	}
	if fetch {
		// Init starts the fetch; keys stay blocked until it lands.
		m.busy = true
		m.status = "refresh..."
	}
	return m
}

// Init implements tea.Model.
func (m BoardModel) Init() tea.Cmd {
	if m.fetch {
		return m.run("refresh", func(ctx context.Context) error {
			m.store.FetchPosts(ctx)
			return m.store.Err()
		})
	}
	return nil
}

// Update implements tea.Model.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)

	case storeDoneMsg:
		m.busy = false
		m.posts = m.store.Posts()
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.action + " done"
		} else {
			m.status = ""
		}
		if m.cursor >= len(m.posts) {
			m.cursor = max(len(m.posts)-1, 0)
		}
		return m, nil
	}
	return m, nil
}

func (m BoardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "a":
		return m.openForm(formAdd, models.Post{})
	case "n":
		return m.openForm(formAddLocal, models.Post{})
	case "e":
		if p, ok := m.selected(); ok {
			return m.openForm(formEdit, p)
		}
	case "d":
		if p, ok := m.selected(); ok {
			id := p.ID
			return m.start("delete", func(ctx context.Context) error {
				m.store.DeletePost(ctx, id)
				return m.store.Err()
			})
		}
	case "r":
		return m.start("refresh", func(ctx context.Context) error {
			m.store.FetchPosts(ctx)
			return m.store.Err()
		})
	}
	return m, nil
}

func (m BoardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.closeForm()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.fields[m.focus].Blur()
		m.focus = 1 - m.focus
		m.fields[m.focus].Focus()
		return m, textinput.Blink
	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m BoardModel) openForm(kind formKind, p models.Post) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.kind = kind
	m.editingID = p.ID
	m.fields[0].SetValue(p.Title)
	m.fields[1].SetValue(p.Body)
	m.fields[1].Blur()
	m.focus = 0
	m.fields[0].Focus()
	m.status = ""
	return m, textinput.Blink
}

func (m *BoardModel) closeForm() {
	m.mode = modeList
	m.fields[0].Blur()
	m.fields[1].Blur()
}

func (m BoardModel) submit() (tea.Model, tea.Cmd) {
	title := m.fields[0].Value()
	body := m.fields[1].Value()
	if strings.TrimSpace(title) == "" {
		m.status = "title is required"
		return m, nil
	}
	m.closeForm()

	switch m.kind {
	case formEdit:
		post, ok := m.store.Post(m.editingID)
		if !ok {
			m.status = fmt.Sprintf("post %d is gone", m.editingID)
			return m, nil
		}
		post.Title = strings.TrimSpace(title)
		post.Body = body
		if err := post.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		return m.start("edit", func(ctx context.Context) error {
			m.store.EditPost(ctx, post)
			return m.store.Err()
		})
	case formAddLocal:
		draft := models.NewDraft(m.userID, title, body)
		if err := draft.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		return m.start("add local", func(context.Context) error {
			m.store.AddLocalPost(draft)
			return nil
		})
	default:
		draft := models.NewDraft(m.userID, title, body)
		if err := draft.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		return m.start("add", func(ctx context.Context) error {
			m.store.AddPost(ctx, draft)
			return m.store.Err()
		})
	}
}

func (m BoardModel) start(action string, op func(context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = action + "..."
	return m, m.run(action, op)
}

// run wraps a store operation in a tea.Cmd reporting its outcome.
func (m BoardModel) run(action string, op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return storeDoneMsg{action: action, err: op(ctx)}
	}
}

func (m BoardModel) selected() (models.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return models.Post{}, false
	}
	return m.posts[m.cursor], true
}

// View implements tea.Model.
func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   POSTBOARD"))
	b.WriteString(titleStyle.Render(fmt.Sprintf(" - %d posts", len(m.posts))))
	b.WriteString("\n\n")

	if m.mode == modeForm {
		switch m.kind {
		case formEdit:
			b.WriteString(stepStyle.Render(fmt.Sprintf("Edit post %d", m.editingID)))
		case formAddLocal:
			b.WriteString(stepStyle.Render("New local post"))
		default:
			b.WriteString(stepStyle.Render("New post"))
		}
		b.WriteString("\n")
		b.WriteString(m.fields[0].View())
		b.WriteString("\n")
		b.WriteString(m.fields[1].View())
		b.WriteString("\n\n")
		if m.status != "" {
			b.WriteString(errorStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("[tab] switch field  [enter] save  [esc] cancel"))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.posts) == 0 {
		b.WriteString(promptStyle.Render("No posts."))
		b.WriteString("\n")
	}
	for i, p := range m.posts {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("› ")
		}
		line := fmt.Sprintf("%s#%-4d %s", marker, p.ID, p.Title)
		if m.store.IsLocal(p) {
			line += " " + localStyle.Render("[local]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[a]dd  [n]ew local  [e]dit  [d]elete  [r]efresh  [q]uit"))
	b.WriteString("\n")
	return b.String()
}

// Err returns the error reported by the last store operation.
func (m BoardModel) Err() error {
	return m.err
}
