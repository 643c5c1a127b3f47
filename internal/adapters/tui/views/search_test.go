package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(m *SearchModel, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestSearchModel_FiltersAsYouType(t *testing.T) {
	s := newTestSession(t, &memStore{})
	i := NewInterpreter(s, nil, nil)
	mustRun(t, i, "add /p -r")

	m := NewSearchModel(s, nil, nil)
	typeRunes(m, "c")
	if len(m.Results()) != 0 {
		t.Errorf("expected no results for a single character, got %d", len(m.Results()))
	}

	typeRunes(m, ".png")
	if len(m.Results()) == 0 {
		t.Fatal("expected results")
	}
	if got := m.Results()[0].Entry.FullPath(); got != "/p/c.png" {
		t.Errorf("expected /p/c.png first, got %s", got)
	}
	if !strings.Contains(m.View(), "/p/c.png") {
		t.Error("expected result in view")
	}
}

func TestSearchModel_OpenAndCopySelection(t *testing.T) {
	opener := &fakeOpener{}
	clip := &fakeClipboard{}
	s := newTestSession(t, &memStore{})
	mustRun(t, NewInterpreter(s, nil, nil), "add /p/sub/d.jpg")

	m := NewSearchModel(s, opener, clip)
	typeRunes(m, "d.jpg")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(opener.opened) != 1 || opener.opened[0] != "/p/sub/d.jpg" {
		t.Errorf("expected selection opened, got %v", opener.opened)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if clip.text != "/p/sub/d.jpg" {
		t.Errorf("expected path on clipboard, got %q", clip.text)
	}
	if m.Message != "Copied /p/sub/d.jpg" || m.MessageErr {
		t.Errorf("unexpected message %q", m.Message)
	}
}

func TestSearchModel_EscReturnsToShell(t *testing.T) {
	m := NewSearchModel(newTestSession(t, &memStore{}), nil, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(SwitchToShellMsg); !ok {
		t.Error("expected SwitchToShellMsg")
	}
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	if p.TotalPages() != 3 {
		t.Errorf("TotalPages() = %d, want 3", p.TotalPages())
	}
	for range 4 {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("cursor %d on page %d, want 4 on page 2", p.Cursor(), p.CurrentPage())
	}
	if start, end := p.VisibleRange(); start != 3 || end != 6 {
		t.Errorf("VisibleRange() = %d, %d, want 3, 6", start, end)
	}

	p.NextPage()
	if start, end := p.VisibleRange(); start != 6 || end != 7 {
		t.Errorf("VisibleRange() = %d, %d, want 6, 7", start, end)
	}
	if p.NextPage() {
		t.Error("expected no page past the last")
	}

	p.SetTotal(2)
	if p.Cursor() != 1 || p.CurrentPage() != 1 {
		t.Errorf("expected cursor clamped to 1 on page 1, got %d on %d", p.Cursor(), p.CurrentPage())
	}
	if p.CursorDown() {
		t.Error("expected cursor to stop at the last item")
	}
}
