package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"photocat/internal/domain"
)

// snapshotTx writes one snapshot inside a transaction
type snapshotTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*snapshotTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &snapshotTx{tx: tx}, nil
}

// replace deletes every stored row and writes snap in their place
func (t *snapshotTx) replace(ctx context.Context, snap *domain.Snapshot) error {
	for _, table := range []string{"entry_links", "entry_metadata", "entry_keywords", "entries", "meta"} {
		if _, err := t.tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	if err := t.writeMeta(ctx, snap); err != nil {
		return err
	}
	for i := range snap.Entries {
		if err := t.insertEntry(ctx, &snap.Entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *snapshotTx) writeMeta(ctx context.Context, snap *domain.Snapshot) error {
	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}
	_, err := t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO meta (key, value) VALUES
			('schema_version', ?),
			('catalog_id', ?),
			('last_id', ?),
			('saved_at', ?)
	`, schemaVersion, snap.CatalogID, strconv.Itoa(int(snap.LastID)), savedAt.Format(time.RFC3339Nano))
	return err
}

// insertEntry writes an entry row with its keywords, metadata and links
func (t *snapshotTx) insertEntry(ctx context.Context, e *domain.SnapshotEntry) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO entries (id, full_path, location, name, extension, timestamp, size, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.FullPath, e.Location, e.Name, e.Extension, e.Timestamp, e.Size, int64(e.Checksum))
	if err != nil {
		return err
	}

	for _, kw := range e.Keywords {
		if _, err := t.tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO entry_keywords (entry_id, keyword) VALUES (?, ?)`, e.ID, kw); err != nil {
			return err
		}
	}
	for _, m := range e.Metadata {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO entry_metadata (entry_id, directory, tag, description)
			VALUES (?, ?, ?, ?)
		`, e.ID, m.Directory, m.Tag, m.Description); err != nil {
			return err
		}
	}
	if err := t.insertLinks(ctx, e.ID, linkDuplicate, e.Duplicates); err != nil {
		return err
	}
	return t.insertLinks(ctx, e.ID, linkPotential, e.PotentialDuplicates)
}

func (t *snapshotTx) insertLinks(ctx context.Context, id domain.EntryID, kind string, peers []domain.EntryID) error {
	for _, peer := range peers {
		if _, err := t.tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO entry_links (entry_id, peer_id, kind) VALUES (?, ?, ?)`,
			id, peer, kind); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *snapshotTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *snapshotTx) Rollback() error {
	return t.tx.Rollback()
}
