package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"photocat/internal/adapters/tui/styles"
	"photocat/internal/application"
	"photocat/internal/application/commands"
	"photocat/internal/ports"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Open     key.Binding
	Copy     key.Binding
	Cancel   key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "prev page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy path"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

const searchPageSize = 10

// SearchModel searches the catalog as the user types
type SearchModel struct {
	ViewState
	session   *application.Session
	opener    ports.FileOpener
	clipboard ports.Clipboard
	input     textinput.Model
	results   []commands.SearchResult
	pager     *Paginator
}

// NewSearchModel creates a new search view model. The opener and clipboard may be nil.
func NewSearchModel(session *application.Session, opener ports.FileOpener, clipboard ports.Clipboard) *SearchModel {
	input := textinput.New()
	input.Placeholder = "name, path or keyword..."
	input.Focus()

	return &SearchModel{
		session:   session,
		opener:    opener,
		clipboard: clipboard,
		input:     input,
		pager:     NewPaginator(searchPageSize),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.pager.Reset()
	m.ClearMessage()
	m.input.Focus()
}

// Results returns the current matches
func (m *SearchModel) Results() []commands.SearchResult {
	return m.results
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToShellMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, SearchKeys.NextPage):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, SearchKeys.PrevPage):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, SearchKeys.Open):
			m.open()
			return m, nil

		case key.Matches(msg, SearchKeys.Copy):
			m.copy()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search(m.input.Value())
	return m, cmd
}

// search runs on every keystroke; the catalog is not safe for use
// from a background command
func (m *SearchModel) search(query string) {
	results, err := commands.NewSearchCommand(m.session, query).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.results = results
	m.pager.SetTotal(len(results))
}

func (m *SearchModel) selected() (string, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.results) {
		return "", false
	}
	return m.results[i].Entry.ID().String(), true
}

func (m *SearchModel) open() {
	target, ok := m.selected()
	if !ok {
		return
	}
	if m.opener == nil {
		m.SetMessage("no viewer configured", true)
		return
	}
	path, err := commands.NewOpenCommand(m.session, m.opener, target).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage("Opened "+path, false)
}

func (m *SearchModel) copy() {
	target, ok := m.selected()
	if !ok {
		return
	}
	if m.clipboard == nil {
		m.SetMessage("clipboard not available", true)
		return
	}
	path, err := commands.NewCopyCommand(m.session, m.clipboard, target).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage("Copied "+path, false)
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Search"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputField.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		if len(m.input.Value()) >= 2 {
			b.WriteString(styles.MutedText.Render("No results found"))
		} else {
			b.WriteString(styles.MutedText.Render("Type at least 2 characters to search"))
		}
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results, page %d of %d",
			len(m.results), m.pager.CurrentPage(), m.pager.TotalPages())))
		b.WriteString("\n\n")

		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderResult(m.results[i], i == m.pager.Cursor()))
			b.WriteString("\n")
		}
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}

	b.WriteString("\n\n")
	b.WriteString(RenderHelpLine(SearchKeys.Up, SearchKeys.Down, SearchKeys.NextPage, SearchKeys.Open, SearchKeys.Copy, SearchKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(result commands.SearchResult, selected bool) string {
	e := result.Entry
	text := fmt.Sprintf("%-6s %s", e.ID(), e.FullPath())

	if selected {
		return styles.Selected.Render(text)
	}
	if kws := e.Keywords(); len(kws) > 0 {
		return text + " " + RenderKeywords(kws)
	}
	return text
}
