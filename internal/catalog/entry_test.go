package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photocat/internal/domain"
)

func TestEntrySetters(t *testing.T) {
	tests := []struct {
		name  string
		set   func(e *Entry) error
		field string
	}{
		{"empty path", func(e *Entry) error { return e.SetFullPath("") }, "fullPath"},
		{"blank location", func(e *Entry) error { return e.SetLocation("  ") }, "location"},
		{"empty name", func(e *Entry) error { return e.SetName("") }, "name"},
		{"empty extension", func(e *Entry) error { return e.SetExtension("") }, "extension"},
		{"empty timestamp", func(e *Entry) error { return e.SetTimestamp("") }, "timestamp"},
		{"negative size", func(e *Entry) error { return e.SetSize(-1) }, "size"},
		{"metadata without tag", func(e *Entry) error {
			return e.AddMetadata(domain.MetadataTag{Directory: "Exif"})
		}, "metadata.tag"},
		{"empty keyword", func(e *Entry) error { return e.AddKeyword(" ") }, "keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set(NewEntry())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidEntry)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEntrySizeZeroIsValid(t *testing.T) {
	e := NewEntry()
	assert.NoError(t, e.SetSize(0))
}

func TestEntryFromProbe(t *testing.T) {
	e, err := EntryFromProbe(domain.FileProbe{
		FullPath:  "/p/a.jpg",
		Location:  "/p",
		Name:      "a",
		Extension: "jpg",
		Timestamp: "20240101 101010",
		Size:      100,
		Checksum:  42,
		Metadata: []domain.MetadataTag{
			{Directory: "Exif", Tag: "Model", Description: "X100"},
			{Directory: "Exif", Tag: "Make", Description: "Fuji"},
			{Directory: "Exif", Tag: "Make", Description: "Fuji"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EntryID(0), e.ID())
	assert.Equal(t, "a.jpg", e.FileName())
	assert.Equal(t, int64(100), e.Size())
	assert.Equal(t, uint64(42), e.Checksum())
	assert.Empty(t, e.Keywords())
	assert.Len(t, e.Metadata(), 2)
	assert.Equal(t, "Make", e.Metadata()[0].Tag)
	assert.NoError(t, e.Validate())
}

func TestEntryFromProbeRejectsMissingFields(t *testing.T) {
	_, err := EntryFromProbe(domain.FileProbe{FullPath: "/p/a.jpg", Location: "/p"})
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)
}

func TestEntryValidateUnpopulated(t *testing.T) {
	assert.ErrorIs(t, NewEntry().Validate(), domain.ErrInvalidEntry)
}

func TestEntryKeywordsAreNormalized(t *testing.T) {
	e := NewEntry()
	require.NoError(t, e.AddKeyword("holiday"))
	require.NoError(t, e.AddKeyword(" Holiday "))

	assert.Equal(t, []string{"HOLIDAY"}, e.Keywords())
	assert.True(t, e.HasKeyword("hOLIDAy"))
}

func TestEntryCloneIsDeep(t *testing.T) {
	e := newProbe(t, "/p/a.jpg", 1, 1)
	require.NoError(t, e.AddKeyword("one"))
	e.duplicates.Add(7)

	c := e.Clone()
	require.NoError(t, c.AddKeyword("two"))
	c.duplicates.Add(8)

	assert.Equal(t, []string{"ONE"}, e.Keywords())
	assert.Equal(t, []domain.EntryID{7}, e.Duplicates())
	assert.Equal(t, []string{"ONE", "TWO"}, c.Keywords())
}

func TestEntrySetIDMustBePositive(t *testing.T) {
	e := NewEntry()
	assert.ErrorIs(t, e.setID(0), domain.ErrInvalidEntry)
	assert.ErrorIs(t, e.setID(-3), domain.ErrInvalidEntry)
	require.NoError(t, e.setID(3))
	assert.Equal(t, domain.EntryID(3), e.ID())
}
