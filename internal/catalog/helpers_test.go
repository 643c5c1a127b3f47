package catalog

import (
	"errors"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"photocat/internal/domain"
)

// fakeComparator answers from an in-memory path -> content table
type fakeComparator struct {
	content map[string]string
	broken  map[string]bool
	calls   int
}

func newFakeComparator() *fakeComparator {
	return &fakeComparator{
		content: make(map[string]string),
		broken:  make(map[string]bool),
	}
}

func (f *fakeComparator) SameContent(a, b string) (bool, error) {
	f.calls++
	if f.broken[a] || f.broken[b] {
		return false, errors.New("read failed")
	}
	ca, okA := f.content[a]
	cb, okB := f.content[b]
	if !okA || !okB {
		return false, errors.New("no such file")
	}
	return ca == cb, nil
}

// newProbe builds an entry the way the file prober would
func newProbe(t testing.TB, fullPath string, size int64, sum uint64) *Entry {
	t.Helper()
	file := path.Base(fullPath)
	name, ext := file, "jpg"
	if i := strings.LastIndex(file, "."); i > 0 {
		name, ext = file[:i], file[i+1:]
	}
	e, err := EntryFromProbe(domain.FileProbe{
		FullPath:  fullPath,
		Location:  path.Dir(fullPath),
		Name:      name,
		Extension: ext,
		Timestamp: "20240102 030405",
		Size:      size,
		Checksum:  sum,
	})
	require.NoError(t, err)
	return e
}

func mustAdd(t testing.TB, c *Catalog, e *Entry) domain.EntryID {
	t.Helper()
	_, err := c.AddFile(e)
	require.NoError(t, err)
	id, err := c.FileIDByPath(e.FullPath())
	require.NoError(t, err)
	return id
}

func mustEntry(t testing.TB, c *Catalog, id domain.EntryID) *Entry {
	t.Helper()
	e, err := c.Entry(id)
	require.NoError(t, err)
	return e
}
