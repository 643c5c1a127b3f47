package ports

import (
	"context"

	"photocat/internal/domain"
)

// FileProber reads what the catalog needs to know about image files on disk
type FileProber interface {
	// Probe stats, fingerprints and reads metadata of a single file.
	// Each call reports its own outcome; there is no shared status.
	Probe(ctx context.Context, path string) (domain.FileProbe, error)

	// List returns the canonical paths of image files in dir
	List(ctx context.Context, dir string, recursive bool) ([]string, error)

	// Exists reports whether path is a regular file
	Exists(path string) bool

	// IsDir reports whether path is a directory
	IsDir(path string) bool

	// Canonical resolves path to the form stored in the catalog
	Canonical(path string) (string, error)
}

// ContentComparator decides whether two files are byte-identical
type ContentComparator interface {
	SameContent(a, b string) (bool, error)
}
