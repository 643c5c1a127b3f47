package filesystem

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparator(t *testing.T) {
	fs := afero.NewMemMapFs()
	big := bytes.Repeat([]byte("0123456789"), compareChunk/5)
	bigOther := append([]byte(nil), big...)
	bigOther[len(bigOther)-1] = 'x'

	files := map[string][]byte{
		"/a.jpg":      []byte("same bytes"),
		"/b.jpg":      []byte("same bytes"),
		"/c.jpg":      []byte("diff bytes"),
		"/d.jpg":      []byte("short"),
		"/big1.jpg":   big,
		"/big2.jpg":   append([]byte(nil), big...),
		"/big3.jpg":   bigOther,
		"/empty1.jpg": nil,
		"/empty2.jpg": nil,
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, content, 0644))
	}

	cmp := NewComparator(fs)
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "/a.jpg", "/b.jpg", true},
		{"same size different bytes", "/a.jpg", "/c.jpg", false},
		{"different size", "/a.jpg", "/d.jpg", false},
		{"multi chunk identical", "/big1.jpg", "/big2.jpg", true},
		{"multi chunk last byte differs", "/big1.jpg", "/big3.jpg", false},
		{"empty files", "/empty1.jpg", "/empty2.jpg", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cmp.SameContent(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := cmp.SameContent("/a.jpg", "/missing.jpg")
	assert.Error(t, err)
}
