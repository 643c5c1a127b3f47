package application

import (
	"photocat/internal/catalog"
	"photocat/internal/domain"
	"photocat/internal/ports"
)

// TargetKind tells whether a target names one file or a directory
type TargetKind int

const (
	TargetFile TargetKind = iota
	TargetDirectory
)

func (k TargetKind) String() string {
	if k == TargetDirectory {
		return "directory"
	}
	return "file"
}

// Target is a resolved command argument
type Target struct {
	Kind TargetKind
	Path string
	IDs  []EntryID
}

// ResolveTarget turns "#12", "12", a file path or a directory path into the
// cataloged entries it names. Files are tried before directories.
func ResolveTarget(cat *catalog.Catalog, prober ports.FileProber, arg string) (*Target, error) {
	if err := ValidateRequired("target", arg); err != nil {
		return nil, err
	}

	if id, ok := domain.ParseEntryID(arg); ok {
		e, err := cat.Entry(id)
		if err != nil {
			return nil, err
		}
		return &Target{Kind: TargetFile, Path: e.FullPath(), IDs: []EntryID{id}}, nil
	}

	path, err := prober.Canonical(arg)
	if err != nil {
		return nil, err
	}
	if id, err := cat.FileIDByPath(path); err == nil {
		return &Target{Kind: TargetFile, Path: path, IDs: []EntryID{id}}, nil
	}
	if ids, err := cat.FileIDsInDirectory(path); err == nil {
		return &Target{Kind: TargetDirectory, Path: path, IDs: ids.Sorted()}, nil
	}

	what := "file"
	if prober.IsDir(path) {
		what = "directory"
	}
	return nil, &NotFoundError{What: what, Key: path}
}

// Resolve resolves a target against the session catalog
func (s *Session) Resolve(arg string) (*Target, error) {
	return ResolveTarget(s.cat, s.prober, arg)
}
