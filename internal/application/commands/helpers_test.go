package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"photocat/internal/adapters/filesystem"
	"photocat/internal/application"
	"photocat/internal/catalog"
	"photocat/internal/domain"
)

type memStore struct {
	snap  *domain.Snapshot
	saves int
}

func (s *memStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	if s.snap == nil {
		return nil, domain.Absent("load", "mem")
	}
	return s.snap, nil
}

func (s *memStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	s.snap = snap
	s.saves++
	return nil
}

func (s *memStore) Location() string { return "mem" }
func (s *memStore) Close() error     { return nil }

// setupSession opens an empty catalog over an in-memory filesystem
func setupSession(t *testing.T, files map[string]string) (*application.Session, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		writeOrFail(t, fs, path, content)
	}

	s, err := application.OpenSession(context.Background(), application.SessionConfig{
		Store:      &memStore{},
		Prober:     filesystem.NewProber(fs, nil, zerolog.Nop()),
		Comparator: filesystem.NewComparator(fs),
		Logger:     zerolog.Nop(),
		Workers:    2,
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	return s, fs
}

func mustAddPath(t *testing.T, s *application.Session, path string, recursive bool) *AddResult {
	t.Helper()
	res, err := NewAddCommand(s, path, recursive).Execute(context.Background())
	if err != nil {
		t.Fatalf("add %s: %v", path, err)
	}
	return res
}

func writeOrFail(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// mtimeOf parses an entry timestamp back into a local time
func mtimeOf(t *testing.T, e *catalog.Entry) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(domain.TimestampLayout, e.Timestamp(), time.Local)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", e.Timestamp(), err)
	}
	return ts
}
