package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"photocat/internal/adapters/tui/styles"
	"photocat/internal/application"
)

// ShellKeyMap defines key bindings for the shell
type ShellKeyMap struct {
	Submit   key.Binding
	Previous key.Binding
	Next     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Search   key.Binding
	Quit     key.Binding
}

var ShellKeys = ShellKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Previous: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Search: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "exit"),
	),
}

// ShellModel is the command prompt with its scrollback
type ShellModel struct {
	ViewState
	session *application.Session
	interp  *Interpreter
	input   textinput.Model
	output  viewport.Model
	lines   []string
	history []string
	histIdx int
}

// NewShellModel creates a new shell model
func NewShellModel(session *application.Session, interp *Interpreter) *ShellModel {
	input := textinput.New()
	input.Prompt = styles.Prompt.Render("photocat> ")
	input.Placeholder = "type HELP for commands"
	input.Focus()

	m := &ShellModel{
		session: session,
		interp:  interp,
		input:   input,
		output:  viewport.New(80, 20),
	}
	m.appendLine(styles.MutedText.Render(fmt.Sprintf("Catalog %s: %d file(s)", session.Location(), session.Catalog().Len())))
	return m
}

// Init initializes the shell
func (m *ShellModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the view dimensions
func (m *ShellModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.input.Width = max(width-16, 10)
	m.output.Width = max(width-4, 20)
	// title, input line, status bar and padding
	m.output.Height = max(height-8, 3)
	m.output.GotoBottom()
}

// Lines returns the scrollback, for tests
func (m *ShellModel) Lines() []string {
	return m.lines
}

// Update handles messages for the shell
func (m *ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ShellKeys.Quit):
			return m, m.exit()

		case key.Matches(msg, ShellKeys.Search):
			return m, switchToSearch

		case key.Matches(msg, ShellKeys.Submit):
			return m, m.submit(m.input.Value())

		case key.Matches(msg, ShellKeys.Previous):
			m.recall(-1)
			return m, nil

		case key.Matches(msg, ShellKeys.Next):
			m.recall(1)
			return m, nil

		case key.Matches(msg, ShellKeys.PageUp), key.Matches(msg, ShellKeys.PageDown):
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs a line and appends its echo and output to the scrollback
func (m *ShellModel) submit(line string) tea.Cmd {
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return nil
	}
	m.history = append(m.history, line)
	m.histIdx = len(m.history)
	m.appendLine(styles.Echo.Render("> " + line))

	out := m.interp.Run(context.Background(), line)
	if out.Err != nil {
		m.appendLine(styles.ErrorMsg.Render(out.Err.Error()))
	}
	if out.Output != "" {
		m.appendLine(styles.Output.Render(out.Output))
	}

	switch out.Action {
	case ActionHelp:
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case ActionSearch:
		return switchToSearch
	case ActionExit:
		return m.exit()
	case ActionClear:
		m.lines = nil
		m.output.SetContent("")
	}
	return nil
}

func switchToSearch() tea.Msg {
	return SwitchToSearchMsg{}
}

func (m *ShellModel) exit() tea.Cmd {
	if m.session.Catalog().IsDirty() {
		return func() tea.Msg { return ConfirmExitMsg{} }
	}
	return tea.Quit
}

func (m *ShellModel) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.histIdx = min(max(m.histIdx+step, 0), len(m.history))
	if m.histIdx == len(m.history) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

// Print appends text to the scrollback
func (m *ShellModel) Print(text string, isErr bool) {
	if isErr {
		text = styles.ErrorMsg.Render(text)
	}
	m.appendLine(text)
}

func (m *ShellModel) appendLine(text string) {
	m.lines = append(m.lines, text)
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

// View renders the shell
func (m *ShellModel) View() string {
	v := NewViewBuilder().
		Raw(RenderTitle("photocat")).
		Line("").
		Line(m.output.View()).
		Line("").
		Line(m.input.View()).
		Line("").
		Raw(m.statusBar())
	return v.String()
}

func (m *ShellModel) statusBar() string {
	var b strings.Builder
	if m.session.Catalog().IsDirty() {
		b.WriteString(styles.StatusDirty.Render("unsaved"))
	} else {
		b.WriteString(styles.StatusKey.Render("saved"))
	}
	stats := m.session.Catalog().Stats()
	b.WriteString(styles.StatusText.Render(fmt.Sprintf("%d files • %d dirs • %d keywords  ", stats.Files, stats.Directories, stats.Keywords)))
	b.WriteString(RenderHelpLine(ShellKeys.Submit, ShellKeys.Previous, ShellKeys.Search, ShellKeys.Quit))
	return b.String()
}
