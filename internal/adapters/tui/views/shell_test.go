package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestShell(t *testing.T) *ShellModel {
	t.Helper()
	s := newTestSession(t, &memStore{})
	m := NewShellModel(s, NewInterpreter(s, nil, nil))
	m.SetSize(100, 30)
	return m
}

func submitLine(m *ShellModel, line string) tea.Cmd {
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestShell_EchoesCommandAndOutput(t *testing.T) {
	m := newTestShell(t)

	if cmd := submitLine(m, "add /p/a.jpg"); cmd != nil {
		t.Error("expected no command after add")
	}

	out := strings.Join(m.Lines(), "\n")
	if !strings.Contains(out, "> add /p/a.jpg") {
		t.Errorf("expected echoed command, got %q", out)
	}
	if !strings.Contains(out, "New file is added.") {
		t.Errorf("expected command output, got %q", out)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input to be cleared, got %q", m.input.Value())
	}
}

func TestShell_BlankLineIsIgnored(t *testing.T) {
	m := newTestShell(t)
	before := len(m.Lines())

	submitLine(m, "   ")
	if len(m.Lines()) != before || len(m.history) != 0 {
		t.Error("expected blank line to be ignored")
	}
}

func TestShell_ErrorsArePrinted(t *testing.T) {
	m := newTestShell(t)

	submitLine(m, "bogus")
	out := strings.Join(m.Lines(), "\n")
	if !strings.Contains(out, "unknown command") {
		t.Errorf("expected unknown command error, got %q", out)
	}
}

func TestShell_HelpAndClear(t *testing.T) {
	m := newTestShell(t)

	cmd := submitLine(m, "help")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(SwitchToHelpMsg); !ok {
		t.Error("expected SwitchToHelpMsg")
	}

	submitLine(m, "clear")
	if len(m.Lines()) != 0 {
		t.Errorf("expected empty scrollback, got %v", m.Lines())
	}
}

func TestShell_ExitAsksWhenDirty(t *testing.T) {
	m := newTestShell(t)

	cmd := submitLine(m, "exit")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a clean catalog to quit directly")
	}

	submitLine(m, "add /p/a.jpg")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(ConfirmExitMsg); !ok {
		t.Error("expected ConfirmExitMsg with unsaved changes")
	}
}

func TestShell_History(t *testing.T) {
	m := newTestShell(t)
	submitLine(m, "stats")
	submitLine(m, "list dirs")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "list dirs" {
		t.Errorf("expected last command, got %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "stats" {
		t.Errorf("expected first command, got %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.input.Value(); got != "" {
		t.Errorf("expected empty input past the end, got %q", got)
	}
}

func TestShell_ViewShowsStatus(t *testing.T) {
	m := newTestShell(t)
	if !strings.Contains(m.View(), "saved") {
		t.Error("expected saved status")
	}
	submitLine(m, "add /p/a.jpg")
	view := m.View()
	if !strings.Contains(view, "unsaved") || !strings.Contains(view, "1 files") {
		t.Errorf("expected unsaved status with one file, got %q", view)
	}
}

func TestConfirmation_Keys(t *testing.T) {
	m := NewConfirmationModel()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want tea.Msg
	}{
		{"yes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, SaveAndQuitMsg{}},
		{"no", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, tea.QuitMsg{}},
		{"cancel", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, SwitchToShellMsg{}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, SwitchToShellMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("got %T, want %T", got, tt.want)
			}
		})
	}

	if !strings.Contains(m.View(), ExitQuestion) {
		t.Error("expected exit question in view")
	}
}
