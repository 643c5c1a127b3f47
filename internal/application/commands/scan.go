package commands

import (
	"context"
	"fmt"
	"sort"

	"photocat/internal/application"
	"photocat/internal/catalog"
	"photocat/internal/domain"
)

// ScanResult contains what a rescan changed
type ScanResult struct {
	Deleted   []domain.EntryID
	Changed   []domain.EntryID
	Restored  []domain.EntryID
	Added     []domain.EntryID
	Unchanged int
	Skipped   []SkippedFile
	Message   string
}

// ScanCommand compares cataloged files with the disk. Vanished files are
// tagged DELETED, modified files are re-read and tagged CHANGED, and new
// images in the scanned directories are added.
type ScanCommand struct {
	session *application.Session
	Target  string
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(session *application.Session, target string) *ScanCommand {
	return &ScanCommand{
		session: session,
		Target:  target,
	}
}

// Execute runs the scan command
func (c *ScanCommand) Execute(ctx context.Context) (*ScanResult, error) {
	cat := c.session.Catalog()
	prober := c.session.Prober()
	log := c.session.Logger()

	ids := cat.IDs()
	dirs := cat.Directories()
	if c.Target != "" {
		target, err := c.session.Resolve(c.Target)
		if err != nil {
			return nil, err
		}
		ids = target.IDs
		dirs = nil
		if target.Kind == application.TargetDirectory {
			dirs = []string{target.Path}
		}
	}

	known := make(map[string]*catalog.Entry, len(ids))
	var paths []string
	res := &ScanResult{}
	for _, id := range ids {
		e, err := cat.Entry(id)
		if err != nil {
			return nil, err
		}
		if !prober.Exists(e.FullPath()) {
			if !e.HasKeyword(domain.KeywordDeleted) {
				if err := cat.AddKeyword(domain.KeywordDeleted, id); err != nil {
					return nil, err
				}
				res.Deleted = append(res.Deleted, id)
			}
			continue
		}
		known[e.FullPath()] = e
		paths = append(paths, e.FullPath())
	}

	for _, dir := range dirs {
		if !prober.IsDir(dir) {
			continue
		}
		found, err := prober.List(ctx, dir, false)
		if err != nil {
			log.Warn().Str("path", dir).Err(err).Msg("skipping directory")
			continue
		}
		for _, p := range found {
			if _, err := cat.FileIDByPath(p); err != nil {
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)

	results, err := application.ProbeAll(ctx, prober, paths, c.session.Workers())
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Err != nil {
			log.Warn().Str("path", r.Path).Err(r.Err).Msg("skipping file")
			res.Skipped = append(res.Skipped, SkippedFile{Path: r.Path, Reason: r.Err.Error()})
			continue
		}

		e, ok := known[r.Path]
		if !ok {
			id, _, err := addProbe(cat, r.Probe)
			if err != nil {
				return nil, fmt.Errorf("failed to add %s: %w", r.Path, err)
			}
			res.Added = append(res.Added, id)
			continue
		}

		if r.Probe.SameContent(e.Size(), e.Checksum(), e.Timestamp()) {
			if e.HasKeyword(domain.KeywordDeleted) {
				if err := cat.RemoveKeyword(domain.KeywordDeleted, e.ID()); err != nil {
					return nil, err
				}
				res.Restored = append(res.Restored, e.ID())
			} else {
				res.Unchanged++
			}
			continue
		}

		id, _, err := addProbe(cat, r.Probe)
		if err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", r.Path, err)
		}
		if err := cat.RemoveKeyword(domain.KeywordDeleted, id); err != nil {
			return nil, err
		}
		if err := cat.AddKeyword(domain.KeywordChanged, id); err != nil {
			return nil, err
		}
		res.Changed = append(res.Changed, id)
	}

	res.Message = fmt.Sprintf("Scanned %d file(s): %d new, %d changed, %d deleted, %d restored",
		len(paths)+len(res.Deleted), len(res.Added), len(res.Changed), len(res.Deleted), len(res.Restored))
	log.Info().
		Int("added", len(res.Added)).
		Int("changed", len(res.Changed)).
		Int("deleted", len(res.Deleted)).
		Msg("scan finished")
	return res, nil
}
