package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photocat/internal/domain"
)

func TestIndexRemovingLastIDDeletesKey(t *testing.T) {
	idx := newIndex[string](ByLocation, false)
	require.NoError(t, idx.Add("/p", 1))
	require.NoError(t, idx.Add("/p", 2))
	require.NoError(t, idx.Add("/q", 3))
	assert.Equal(t, 2, idx.Len())

	idx.Remove("/p", 1)
	ids, ok := idx.Lookup("/p")
	require.True(t, ok)
	assert.Equal(t, []domain.EntryID{2}, ids.Sorted())

	idx.Remove("/p", 2)
	_, ok = idx.Lookup("/p")
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Len())
}

func TestIndexRemoveUnknownIsNoop(t *testing.T) {
	idx := newIndex[string](ByKeyword, false)
	idx.Remove("missing", 1)
	require.NoError(t, idx.Add("k", 1))
	idx.Remove("k", 2)
	assert.Equal(t, 1, idx.Len())
}

func TestIndexRejectsEmptyStringKey(t *testing.T) {
	idx := newIndex[string](ByName, false)
	err := idx.Add("", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)
	assert.Equal(t, 0, idx.Len())
}

func TestIndexAcceptsZeroNumericKey(t *testing.T) {
	sizes := newIndex[int64](BySize, true)
	require.NoError(t, sizes.Add(0, 1))
	ids, ok := sizes.Lookup(0)
	require.True(t, ok)
	assert.True(t, ids.Has(1))
}

func TestIndexLookupReturnsCopy(t *testing.T) {
	idx := newIndex[string](ByPath, false)
	require.NoError(t, idx.Add("/p/a.jpg", 1))

	ids, _ := idx.Lookup("/p/a.jpg")
	ids.Add(99)

	again, _ := idx.Lookup("/p/a.jpg")
	assert.False(t, again.Has(99))
}

func TestIndexSetTextualKeys(t *testing.T) {
	s := NewIndexSet()
	require.NoError(t, s.AddToIndex(BySize, "100", 1))
	require.NoError(t, s.AddToIndex(ByChecksum, "42", 1))
	require.NoError(t, s.AddToIndex(ByKeyword, "SEA", 1))

	ids, ok := s.LookupIndex(BySize, "100")
	require.True(t, ok)
	assert.True(t, ids.Has(1))
	assert.Equal(t, []domain.EntryID{1}, s.potentialDuplicates(100, 42).Sorted())

	assert.ErrorIs(t, s.AddToIndex(BySize, "big", 1), domain.ErrInvalidEntry)
	_, ok = s.LookupIndex(ByChecksum, "-1")
	assert.False(t, ok)

	require.NoError(t, s.RemoveFromIndex(BySize, "100", 1))
	assert.Equal(t, 0, s.Len(BySize))
	assert.Empty(t, s.potentialDuplicates(100, 42))
}

func TestParseIndexKind(t *testing.T) {
	tests := []struct {
		in   string
		want IndexKind
		ok   bool
	}{
		{"dir", ByLocation, true},
		{"Directory", ByLocation, true},
		{"keyword", ByKeyword, true},
		{"ext", ByExtension, true},
		{"date", ByTimestamp, true},
		{"tag", ByTag, true},
		{"colour", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseIndexKind(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
