package application

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"photocat/internal/adapters/filesystem"
	"photocat/internal/catalog"
	"photocat/internal/domain"
)

type memStore struct {
	snap    *domain.Snapshot
	loadErr error
	saveErr error
	saves   int
}

func (s *memStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.snap == nil {
		return nil, domain.Absent("load", "mem")
	}
	return s.snap, nil
}

func (s *memStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = snap
	s.saves++
	return nil
}

func (s *memStore) Location() string { return "mem" }
func (s *memStore) Close() error     { return nil }

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

func newTestSession(t *testing.T, store *memStore, files map[string]string) (*Session, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, files)

	s, err := OpenSession(context.Background(), SessionConfig{
		Store:      store,
		Prober:     filesystem.NewProber(fs, nil, zerolog.Nop()),
		Comparator: filesystem.NewComparator(fs),
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	return s, fs
}

func addPath(t *testing.T, s *Session, path string) EntryID {
	t.Helper()
	probe, err := s.Prober().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Probe(%s) error = %v", path, err)
	}
	e, err := catalog.EntryFromProbe(probe)
	if err != nil {
		t.Fatalf("EntryFromProbe(%s) error = %v", path, err)
	}
	id, err := s.Catalog().AddFile(e)
	if err != nil {
		t.Fatalf("AddFile(%s) error = %v", path, err)
	}
	if id == 0 {
		id, _ = s.Catalog().FileIDByPath(path)
	}
	return id
}
