package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photocat/internal/adapters/filesystem"
	"photocat/internal/application"
	"photocat/internal/domain"
)

type memStore struct {
	snap  *domain.Snapshot
	saves int
	err   error
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
	s.saves++
	return nil
}

func (s *memStore) Location() string { return "mem" }
func (s *memStore) Close() error     { return nil }

func newTestTools(t *testing.T, store *memStore) *Tools {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range map[string]string{
		"/p/a.jpg":     "alpha",
		"/p/b.jpg":     "alpha",
		"/p/c.png":     "gamma",
		"/p/sub/d.jpg": "delta",
	} {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	s, err := application.OpenSession(context.Background(), application.SessionConfig{
		Store:      store,
		Prober:     filesystem.NewProber(fs, nil, zerolog.Nop()),
		Comparator: filesystem.NewComparator(fs),
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)
	return NewTools(s)
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func TestWriteToolsSaveChanges(t *testing.T) {
	store := &memStore{}
	tools := newTestTools(t, store)

	out, isErr := call(t, tools.addHandler, map[string]any{"path": "/p", "recursive": true})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Added 4")
	assert.Equal(t, 1, store.saves)
	assert.False(t, tools.session.Catalog().IsDirty())

	out, isErr = call(t, tools.addKeywordHandler, map[string]any{"keyword": "holiday", "target": "/p/sub"})
	require.False(t, isErr, out)
	assert.Equal(t, 2, store.saves)

	out, isErr = call(t, tools.findDuplicatesHandler, nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, "/p/a.jpg")
	assert.Contains(t, out, "/p/b.jpg")

	out, isErr = call(t, tools.removeHandler, map[string]any{"target": "#3"})
	require.False(t, isErr, out)
	assert.Equal(t, 3, tools.session.Catalog().Len())
	assert.Len(t, store.snap.Entries, 3)
}

func TestWriteToolErrors(t *testing.T) {
	tools := newTestTools(t, &memStore{})

	out, isErr := call(t, tools.addKeywordHandler, map[string]any{"keyword": "DUP", "target": "#1"})
	assert.True(t, isErr)
	assert.Contains(t, out, "DUP")

	out, isErr = call(t, tools.removeHandler, map[string]any{"target": "/nowhere"})
	assert.True(t, isErr)
	assert.Contains(t, out, "not found")

	_, isErr = call(t, tools.addHandler, map[string]any{"path": ""})
	assert.True(t, isErr)
}

func TestWriteToolReportsSaveFailure(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	tools := newTestTools(t, store)

	out, isErr := call(t, tools.addHandler, map[string]any{"path": "/p/a.jpg"})
	assert.True(t, isErr)
	assert.Contains(t, out, "disk full")
	assert.True(t, tools.session.Catalog().IsDirty())
}

func TestReadTools(t *testing.T) {
	tools := newTestTools(t, &memStore{})
	_, isErr := call(t, tools.addHandler, map[string]any{"path": "/p", "recursive": true})
	require.False(t, isErr)
	_, isErr = call(t, tools.addKeywordHandler, map[string]any{"keyword": "sea", "target": "/p/c.png"})
	require.False(t, isErr)

	out, _ := call(t, tools.statsHandler, nil)
	assert.Contains(t, out, "4")

	out, _ = call(t, tools.listHandler, nil)
	assert.Contains(t, out, "/p/sub/d.jpg")

	out, _ = call(t, tools.listHandler, map[string]any{"by": "ext", "subject": "png"})
	assert.Contains(t, out, "/p/c.png")
	assert.NotContains(t, out, "/p/a.jpg")

	out, _ = call(t, tools.directoriesHandler, nil)
	assert.Equal(t, "/p\n/p/sub\n", out)

	out, _ = call(t, tools.keywordsHandler, nil)
	assert.Contains(t, out, "SEA  1")

	out, isErr = call(t, tools.detailsHandler, map[string]any{"target": "/p/c.png"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "SEA")

	out, _ = call(t, tools.searchHandler, map[string]any{"query": "d.jpg"})
	assert.Contains(t, out, "/p/sub/d.jpg")

	out, _ = call(t, tools.searchHandler, map[string]any{"query": "zzzz"})
	assert.Equal(t, "No results found.", out)

	_, isErr = call(t, tools.checkHandler, nil)
	assert.False(t, isErr)
}

func TestReadToolErrors(t *testing.T) {
	tools := newTestTools(t, &memStore{})

	_, isErr := call(t, tools.detailsHandler, nil)
	assert.True(t, isErr)

	_, isErr = call(t, tools.searchHandler, nil)
	assert.True(t, isErr)

	out, isErr := call(t, tools.listHandler, map[string]any{"by": "colour", "subject": "red"})
	assert.True(t, isErr)
	assert.Contains(t, out, "unknown index")

	out, _ = call(t, tools.directoriesHandler, nil)
	assert.Equal(t, "No results.", out)
}
