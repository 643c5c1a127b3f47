package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photocat/internal/domain"
)

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Version:   domain.SnapshotVersion,
		CatalogID: "6f1c1c9e-2b43-4a4b-9d57-1c3d6b1f0a11",
		LastID:    3,
		SavedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Entries: []domain.SnapshotEntry{
			{
				ID: 1, FullPath: "/p/a.jpg", Location: "/p", Name: "a", Extension: "jpg",
				Timestamp: "20240101 101010", Size: 100, Checksum: 1<<63 + 5,
				Keywords:   []string{"DUP", "SEA"},
				Metadata:   []domain.MetadataTag{{Directory: "Exif", Tag: "Model", Description: "X100"}},
				Duplicates: []domain.EntryID{3},
			},
			{
				ID: 3, FullPath: "/q/a.jpg", Location: "/q", Name: "a", Extension: "jpg",
				Timestamp: "20240101 101010", Size: 100, Checksum: 1<<63 + 5,
				Keywords:   []string{"DUP"},
				Duplicates: []domain.EntryID{1},
			},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "photo_db.pdb")
	store := NewOSFileStore(path)

	want := sampleSnapshot()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, path, store.Location())
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/db/photo_db.pdb")

	first := sampleSnapshot()
	require.NoError(t, store.Save(ctx, first))
	second := sampleSnapshot()
	second.Entries = second.Entries[:1]
	second.Entries[0].Duplicates = nil
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Entries, 1)

	leftovers, err := afero.Glob(fs, "/db/.photocat-*")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStoreLoadErrors(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	valid, err := encode(sampleSnapshot())
	require.NoError(t, err)
	badVersion := append([]byte(nil), valid...)
	badVersion[5] = 9

	future := sampleSnapshot()
	future.Version = 42
	futureData, err := encode(future)
	require.NoError(t, err)

	tests := []struct {
		name    string
		content []byte
		want    error
	}{
		{"empty file", []byte{}, domain.ErrSnapshotCorrupt},
		{"wrong magic", []byte("JAVAxxxxxxxx"), domain.ErrSnapshotCorrupt},
		{"wrong format version", badVersion, domain.ErrSnapshotCorrupt},
		{"truncated body", valid[:len(valid)-4], domain.ErrSnapshotCorrupt},
		{"unsupported snapshot version", futureData, domain.ErrSnapshotCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, afero.WriteFile(fs, "/db/x.pdb", tt.content, 0644))
			_, err := NewFileStore(fs, "/db/x.pdb").Load(ctx)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = NewFileStore(fs, "/db/missing.pdb").Load(ctx)
	assert.ErrorIs(t, err, domain.ErrSnapshotAbsent)
}

func TestFileStoreSaveFailureIsIO(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/db", 0755))
	store := NewFileStore(afero.NewReadOnlyFs(base), "/db/photo_db.pdb")

	err := store.Save(context.Background(), sampleSnapshot())
	assert.ErrorIs(t, err, domain.ErrPersistenceIO)
}
