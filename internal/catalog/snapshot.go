package catalog

import (
	"fmt"
	"time"

	"photocat/internal/domain"
)

// Snapshot exports the entry table and counters. Indices are left out.
func (c *Catalog) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Version:   domain.SnapshotVersion,
		CatalogID: c.id,
		LastID:    c.lastID,
		SavedAt:   time.Now().UTC(),
		Entries:   make([]domain.SnapshotEntry, 0, len(c.entries)),
	}
	for _, id := range c.IDs() {
		snap.Entries = append(snap.Entries, c.entries[id].toSnapshot())
	}
	return snap
}

// Restore rebuilds a catalog from a snapshot. Any structural problem is
// reported as domain.ErrSnapshotCorrupt. The restored catalog is clean.
func Restore(snap *domain.Snapshot, opts ...Option) (*Catalog, error) {
	if snap == nil {
		return nil, corrupt("snapshot is empty")
	}
	if snap.Version != domain.SnapshotVersion {
		return nil, corrupt("unsupported snapshot version %d", snap.Version)
	}
	if snap.LastID < 0 {
		return nil, corrupt("negative last id %d", snap.LastID)
	}

	c := New(append([]Option{WithCatalogID(snap.CatalogID)}, opts...)...)
	c.lastID = snap.LastID

	for _, row := range snap.Entries {
		e, err := entryFromSnapshot(row)
		if err != nil {
			return nil, corrupt("entry %s: %v", row.ID, err)
		}
		if e.id > snap.LastID {
			return nil, corrupt("entry %s above last id %s", e.id, snap.LastID)
		}
		if _, dup := c.entries[e.id]; dup {
			return nil, corrupt("entry %s appears twice", e.id)
		}
		if _, taken := c.idx.paths.Lookup(e.fullPath); taken {
			return nil, corrupt("path %s cataloged twice", e.fullPath)
		}
		if err := c.idx.insert(e); err != nil {
			return nil, corrupt("entry %s: %v", e.id, err)
		}
		c.entries[e.id] = e
		if e.duplicates.Len() > 0 {
			c.confirmed.Add(e.id)
		}
		if e.potentialDuplicates.Len() > 0 {
			c.potential.Add(e.id)
		}
	}

	if err := c.CheckConsistency(); err != nil {
		return nil, corrupt("%v", err)
	}
	return c, nil
}

func entryFromSnapshot(row domain.SnapshotEntry) (*Entry, error) {
	e, err := EntryFromProbe(domain.FileProbe{
		FullPath:  row.FullPath,
		Location:  row.Location,
		Name:      row.Name,
		Extension: row.Extension,
		Timestamp: row.Timestamp,
		Size:      row.Size,
		Checksum:  row.Checksum,
		Metadata:  row.Metadata,
	})
	if err != nil {
		return nil, err
	}
	if err := e.setID(row.ID); err != nil {
		return nil, err
	}
	for _, kw := range row.Keywords {
		if err := e.AddKeyword(kw); err != nil {
			return nil, err
		}
	}
	for _, id := range row.Duplicates {
		e.duplicates.Add(id)
	}
	for _, id := range row.PotentialDuplicates {
		e.potentialDuplicates.Add(id)
	}
	return e, nil
}

func corrupt(format string, args ...any) error {
	return &domain.StoreError{
		Op:       "restore",
		Location: "snapshot",
		Kind:     domain.ErrSnapshotCorrupt,
		Err:      fmt.Errorf(format, args...),
	}
}
