package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"photocat/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "enter"),
		key.WithHelp("esc/q", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToShellMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("photocat Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Commands are case-insensitive. Quote arguments that contain spaces."))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Catalog"))
	b.WriteString("\n")
	b.WriteString(helpLine("ADD (A) <path> [-r]", "Add a file, or the images in a directory"))
	b.WriteString(helpLine("REMOVE (R) <target>", "Remove a file or a directory's files"))
	b.WriteString(helpLine("SCAN (S) [target]", "Mark deleted and changed files, add new ones"))
	b.WriteString(helpLine("DUPLICATES (DUP, DD)", "Confirm potential duplicates by content"))
	b.WriteString(helpLine("SAVE", "Save changes to the catalog file"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Keywords"))
	b.WriteString("\n")
	b.WriteString(helpLine("AK <keyword> <target>", "Add a keyword"))
	b.WriteString(helpLine("RK <keyword> <target>", "Remove a keyword"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Browse"))
	b.WriteString("\n")
	b.WriteString(helpLine("LIST (L) [what]", "dirs, keywords, duplicates, potential or a target"))
	b.WriteString(helpLine("LIST <index> <key>", "Files by path, dir, name, ext, date, size, keyword, tag"))
	b.WriteString(helpLine("DETAILS (D) <target>", "Show every field of a file"))
	b.WriteString(helpLine("SEARCH (F) [query]", "Fuzzy search; without a query opens the search view"))
	b.WriteString(helpLine("OPEN (O) <target>", "Open a file in the image viewer"))
	b.WriteString(helpLine("COPY (C) <target>", "Copy a file's path to the clipboard"))
	b.WriteString(helpLine("STATS / CHECK", "Counters / consistency check"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("HELP (H) / ABOUT (AB)", "This page / about the program"))
	b.WriteString(helpLine("CLEAR", "Clear the scrollback"))
	b.WriteString(helpLine("EXIT (E, X)", "Quit, asking to save unsaved changes"))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("  A target is #<id>, a cataloged file path or a directory."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("q"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 24)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
