package commands

import (
	"context"
	"fmt"

	"photocat/internal/application"
	"photocat/internal/catalog"
	"photocat/internal/domain"
)

// SkippedFile is a path the add or scan commands could not catalog
type SkippedFile struct {
	Path   string
	Reason string
}

// AddResult contains the result of adding files
type AddResult struct {
	Added   []domain.EntryID
	Updated []domain.EntryID
	Skipped []SkippedFile
	Message string
}

// AddCommand catalogs a file, or every image in a directory
type AddCommand struct {
	session   *application.Session
	Path      string
	Recursive bool
}

// NewAddCommand creates a new AddCommand
func NewAddCommand(session *application.Session, path string, recursive bool) *AddCommand {
	return &AddCommand{
		session:   session,
		Path:      path,
		Recursive: recursive,
	}
}

// Validate checks the command arguments
func (c *AddCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute probes the files in parallel and catalogs them in path order
func (c *AddCommand) Execute(ctx context.Context) (*AddResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	prober := c.session.Prober()
	path, err := prober.Canonical(c.Path)
	if err != nil {
		return nil, err
	}

	var paths []string
	single := false
	switch {
	case prober.IsDir(path):
		paths, err = prober.List(ctx, path, c.Recursive)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", path, err)
		}
	case prober.Exists(path):
		paths = []string{path}
		single = true
	default:
		return nil, &application.NotFoundError{What: "file", Key: path}
	}

	results, err := application.ProbeAll(ctx, prober, paths, c.session.Workers())
	if err != nil {
		return nil, err
	}

	res := &AddResult{}
	cat := c.session.Catalog()
	for _, r := range results {
		if r.Err != nil {
			if single {
				return nil, fmt.Errorf("failed to add file: %w", r.Err)
			}
			res.Skipped = append(res.Skipped, SkippedFile{Path: r.Path, Reason: r.Err.Error()})
			continue
		}
		id, updated, err := addProbe(cat, r.Probe)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", r.Path, err)
		}
		if updated {
			res.Updated = append(res.Updated, id)
		} else {
			res.Added = append(res.Added, id)
		}
	}

	switch {
	case single && len(res.Updated) == 1:
		res.Message = "File is updated."
	case single:
		res.Message = "New file is added."
	default:
		res.Message = fmt.Sprintf("Added %d, updated %d, skipped %d file(s) from %s",
			len(res.Added), len(res.Updated), len(res.Skipped), path)
	}
	return res, nil
}

// addProbe catalogs a probe and reports its id and whether it replaced an existing record
func addProbe(cat *catalog.Catalog, probe domain.FileProbe) (domain.EntryID, bool, error) {
	e, err := catalog.EntryFromProbe(probe)
	if err != nil {
		return 0, false, err
	}
	prev, err := cat.AddFile(e)
	if err != nil {
		return 0, false, err
	}
	if prev != 0 {
		return prev, true, nil
	}
	id, err := cat.FileIDByPath(probe.FullPath)
	return id, false, err
}
