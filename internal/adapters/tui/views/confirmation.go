package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"photocat/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for the exit confirmation
type ConfirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "save and exit"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "exit without saving"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("c", "C", "esc"),
		key.WithHelp("c/esc", "cancel"),
	),
}

// ExitQuestion is asked when quitting with unsaved changes
const ExitQuestion = "There are unsaved changes. Do you want to save them?"

// ConfirmationModel asks Yes/No/Cancel before leaving with unsaved changes
type ConfirmationModel struct {
	ViewState
	Keys ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() *ConfirmationModel {
	return &ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Init initializes the confirmation view
func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Yes):
		return m, func() tea.Msg { return SaveAndQuitMsg{} }
	case key.Matches(keyMsg, m.Keys.No):
		return m, tea.Quit
	case key.Matches(keyMsg, m.Keys.Cancel):
		m.ClearMessage()
		return m, func() tea.Msg { return SwitchToShellMsg{} }
	}
	return m, nil
}

// View renders the confirmation prompt
func (m *ConfirmationModel) View() string {
	return NewViewBuilder().
		Title("Exit").
		Message(m.Message, m.MessageErr).
		Line(RenderConfirmPrompt(ExitQuestion)).
		BlankLine().
		Help(m.Keys.Yes, m.Keys.No, m.Keys.Cancel).
		String()
}

// RenderConfirmPrompt renders the standard Yes/No/Cancel prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render("/"))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render("/"))
	b.WriteString(styles.HelpKey.Render("c"))
	return b.String()
}
