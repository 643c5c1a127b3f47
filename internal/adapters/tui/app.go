package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"photocat/internal/adapters/tui/views"
	"photocat/internal/application"
	"photocat/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewShell ViewState = iota
	ViewHelp
	ViewSearch
	ViewConfirmExit
)

// App is the main TUI application model
type App struct {
	session *application.Session

	state   ViewState
	shell   *views.ShellModel
	help    *views.HelpModel
	search  *views.SearchModel
	confirm *views.ConfirmationModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(session *application.Session, opener ports.FileOpener, clipboard ports.Clipboard) *App {
	interp := views.NewInterpreter(session, opener, clipboard)
	return &App{
		session: session,
		state:   ViewShell,
		shell:   views.NewShellModel(session, interp),
		help:    views.NewHelpModel(),
		search:  views.NewSearchModel(session, opener, clipboard),
		confirm: views.NewConfirmationModel(),
	}
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.shell.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.shell.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToSearchMsg:
		a.search.Reset()
		a.state = ViewSearch
		return a, a.search.Init()

	case views.SwitchToShellMsg:
		a.state = ViewShell
		return a, nil

	case views.ConfirmExitMsg:
		a.confirm.ClearMessage()
		a.state = ViewConfirmExit
		return a, nil

	case views.SaveAndQuitMsg:
		if _, err := a.session.Save(context.Background()); err != nil {
			a.state = ViewShell
			a.shell.Print(err.Error(), true)
			return a, nil
		}
		return a, tea.Quit
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewShell:
		_, cmd = a.shell.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewConfirmExit:
		_, cmd = a.confirm.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	case ViewSearch:
		return a.search.View()
	case ViewConfirmExit:
		return a.confirm.View()
	default:
		return a.shell.View()
	}
}
