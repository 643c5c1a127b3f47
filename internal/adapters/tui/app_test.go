package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"photocat/internal/adapters/filesystem"
	"photocat/internal/adapters/tui/views"
	"photocat/internal/application"
	"photocat/internal/catalog"
	"photocat/internal/domain"
)

type memStore struct {
	snap *domain.Snapshot
	err  error
}

func (s *memStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	if s.snap == nil {
		return nil, domain.Absent("load", "mem")
	}
	return s.snap, nil
}

func (s *memStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	if s.err != nil {
		return s.err
	}
	s.snap = snap
	return nil
}

func (s *memStore) Location() string { return "mem" }
func (s *memStore) Close() error     { return nil }

func newTestApp(t *testing.T, store *memStore) (*App, *application.Session) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/a.jpg", []byte("alpha"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	s, err := application.OpenSession(context.Background(), application.SessionConfig{
		Store:      store,
		Prober:     filesystem.NewProber(fs, nil, zerolog.Nop()),
		Comparator: filesystem.NewComparator(fs),
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	app := NewApp(s, nil, nil)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app, s
}

func TestApp_SwitchesViews(t *testing.T) {
	app, _ := newTestApp(t, &memStore{})

	app.Update(views.SwitchToHelpMsg{})
	if app.State() != ViewHelp {
		t.Fatalf("expected help view, got %v", app.State())
	}
	if !strings.Contains(app.View(), "photocat Help") {
		t.Error("expected help content")
	}

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	app.Update(cmd())
	if app.State() != ViewShell {
		t.Errorf("expected shell view, got %v", app.State())
	}
}

func TestApp_SaveAndQuit(t *testing.T) {
	store := &memStore{}
	app, s := newTestApp(t, store)
	addPath(t, s, "/p/a.jpg")

	app.Update(views.ConfirmExitMsg{})
	if app.State() != ViewConfirmExit {
		t.Fatalf("expected confirmation view, got %v", app.State())
	}

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	_, cmd = app.Update(cmd())
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected the app to quit after saving")
	}
	if store.snap == nil || len(store.snap.Entries) != 1 {
		t.Error("expected catalog to be saved")
	}
}

func TestApp_SaveFailureReturnsToShell(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	app, s := newTestApp(t, store)
	addPath(t, s, "/p/a.jpg")

	app.Update(views.ConfirmExitMsg{})
	_, cmd := app.Update(views.SaveAndQuitMsg{})
	if cmd != nil {
		t.Error("expected no quit on save failure")
	}
	if app.State() != ViewShell {
		t.Errorf("expected shell view, got %v", app.State())
	}
	if !strings.Contains(app.View(), "disk full") {
		t.Error("expected save error in scrollback")
	}
}

func addPath(t *testing.T, s *application.Session, path string) {
	t.Helper()
	probe, err := s.Prober().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe(%s) error = %v", path, err)
	}
	e, err := catalog.EntryFromProbe(probe)
	if err != nil {
		t.Fatalf("EntryFromProbe(%s) error = %v", path, err)
	}
	if _, err := s.Catalog().AddFile(e); err != nil {
		t.Fatalf("AddFile(%s) error = %v", path, err)
	}
}
