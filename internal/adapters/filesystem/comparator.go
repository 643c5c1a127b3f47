package filesystem

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"photocat/internal/ports"
)

const compareChunk = 64 * 1024

// Comparator implements ports.ContentComparator by reading both files
type Comparator struct {
	fs afero.Fs
}

// Ensure Comparator implements ContentComparator
var _ ports.ContentComparator = (*Comparator)(nil)

// NewComparator creates a byte comparator on fs
func NewComparator(fs afero.Fs) *Comparator {
	return &Comparator{fs: fs}
}

// SameContent reports whether a and b hold identical bytes.
// Files of different size are never opened.
func (c *Comparator) SameContent(a, b string) (bool, error) {
	infoA, err := c.fs.Stat(a)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", a, err)
	}
	infoB, err := c.fs.Stat(b)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", b, err)
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fa, err := c.fs.Open(a)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", a, err)
	}
	defer fa.Close()
	fb, err := c.fs.Open(b)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", b, err)
	}
	defer fb.Close()

	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if errA != nil && !doneA {
			return false, fmt.Errorf("failed to read %s: %w", a, errA)
		}
		if errB != nil && !doneB {
			return false, fmt.Errorf("failed to read %s: %w", b, errB)
		}
		if doneA || doneB {
			return doneA && doneB, nil
		}
	}
}
