package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"photocat/internal/domain"
	"photocat/internal/ports"
)

const schemaVersion = "1"

const schema = `
	PRAGMA synchronous = NORMAL;
	PRAGMA busy_timeout = 5000;
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY,
		full_path TEXT NOT NULL UNIQUE,
		location TEXT NOT NULL,
		name TEXT NOT NULL,
		extension TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		size INTEGER NOT NULL,
		checksum INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS entry_keywords (
		entry_id INTEGER NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
		keyword TEXT NOT NULL,
		PRIMARY KEY (entry_id, keyword)
	);
	CREATE TABLE IF NOT EXISTS entry_metadata (
		entry_id INTEGER NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
		directory TEXT NOT NULL,
		tag TEXT NOT NULL,
		description TEXT NOT NULL,
		PRIMARY KEY (entry_id, directory, tag, description)
	);
	CREATE TABLE IF NOT EXISTS entry_links (
		entry_id INTEGER NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
		peer_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		PRIMARY KEY (entry_id, peer_id, kind)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_location ON entries(location);
	CREATE INDEX IF NOT EXISTS idx_keywords_keyword ON entry_keywords(keyword);
`

// Link kinds stored in entry_links
const (
	linkDuplicate = "dup"
	linkPotential = "potential"
)

// Store implements ports.SnapshotStore using SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements SnapshotStore
var _ ports.SnapshotStore = (*Store)(nil)

// NewStore creates a SQLite snapshot store at path. The database is opened lazily.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Location returns the database path
func (s *Store) Location() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite3", s.path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

// Load reads the snapshot stored in the database
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, domain.Absent("load", s.path)
	} else if err != nil {
		return nil, domain.IOFailure("load", s.path, err)
	}
	if err := s.open(); err != nil {
		return nil, domain.IOFailure("load", s.path, err)
	}

	var tables int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'meta'`,
	).Scan(&tables)
	if err != nil {
		return nil, s.classify("load", err)
	}
	if tables == 0 {
		return nil, domain.Corrupt("load", s.path, errors.New("missing photocat schema"))
	}

	meta, err := s.readMeta(ctx)
	if err != nil {
		return nil, s.classify("load", err)
	}
	if meta["schema_version"] != schemaVersion {
		return nil, domain.Corrupt("load", s.path,
			fmt.Errorf("unsupported schema version %q", meta["schema_version"]))
	}

	snap, err := snapshotFromMeta(meta)
	if err != nil {
		return nil, domain.Corrupt("load", s.path, err)
	}
	if err := s.readEntries(ctx, snap); err != nil {
		return nil, s.classify("load", err)
	}
	return snap, nil
}

// Save replaces the stored snapshot in a single transaction
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return domain.IOFailure("save", s.path, err)
	}
	if err := s.open(); err != nil {
		return domain.IOFailure("save", s.path, err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return s.classify("save", fmt.Errorf("failed to setup database: %w", err))
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return s.classify("save", err)
	}
	if err := tx.replace(ctx, snap); err != nil {
		tx.Rollback()
		return s.classify("save", err)
	}
	if err := tx.Commit(); err != nil {
		return s.classify("save", err)
	}
	return nil
}

func (s *Store) readMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func snapshotFromMeta(meta map[string]string) (*domain.Snapshot, error) {
	var lastID int
	if _, err := fmt.Sscan(meta["last_id"], &lastID); err != nil {
		return nil, fmt.Errorf("invalid last_id %q", meta["last_id"])
	}
	snap := &domain.Snapshot{
		Version:   domain.SnapshotVersion,
		CatalogID: meta["catalog_id"],
		LastID:    domain.EntryID(lastID),
	}
	if v := meta["saved_at"]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("invalid saved_at %q", v)
		}
		snap.SavedAt = t
	}
	return snap, nil
}

func (s *Store) readEntries(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, full_path, location, name, extension, timestamp, size, checksum
		FROM entries ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	pos := make(map[domain.EntryID]int)
	for rows.Next() {
		var e domain.SnapshotEntry
		var checksum int64
		if err := rows.Scan(&e.ID, &e.FullPath, &e.Location, &e.Name, &e.Extension,
			&e.Timestamp, &e.Size, &checksum); err != nil {
			return err
		}
		e.Checksum = uint64(checksum)
		pos[e.ID] = len(snap.Entries)
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if err := s.each(ctx, `SELECT entry_id, keyword FROM entry_keywords ORDER BY entry_id, keyword`,
		func(rows *sql.Rows) error {
			var id domain.EntryID
			var kw string
			if err := rows.Scan(&id, &kw); err != nil {
				return err
			}
			if i, ok := pos[id]; ok {
				snap.Entries[i].Keywords = append(snap.Entries[i].Keywords, kw)
			}
			return nil
		}); err != nil {
		return err
	}

	if err := s.each(ctx, `SELECT entry_id, directory, tag, description FROM entry_metadata
		ORDER BY entry_id, directory, tag, description`,
		func(rows *sql.Rows) error {
			var id domain.EntryID
			var m domain.MetadataTag
			if err := rows.Scan(&id, &m.Directory, &m.Tag, &m.Description); err != nil {
				return err
			}
			if i, ok := pos[id]; ok {
				snap.Entries[i].Metadata = append(snap.Entries[i].Metadata, m)
			}
			return nil
		}); err != nil {
		return err
	}

	return s.each(ctx, `SELECT entry_id, peer_id, kind FROM entry_links ORDER BY entry_id, peer_id`,
		func(rows *sql.Rows) error {
			var id, peer domain.EntryID
			var kind string
			if err := rows.Scan(&id, &peer, &kind); err != nil {
				return err
			}
			i, ok := pos[id]
			if !ok {
				return nil
			}
			switch kind {
			case linkDuplicate:
				snap.Entries[i].Duplicates = append(snap.Entries[i].Duplicates, peer)
			case linkPotential:
				snap.Entries[i].PotentialDuplicates = append(snap.Entries[i].PotentialDuplicates, peer)
			default:
				return &corruptRow{fmt.Sprintf("unknown link kind %q", kind)}
			}
			return nil
		})
}

func (s *Store) each(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// corruptRow marks data that was read fine but makes no sense
type corruptRow struct{ msg string }

func (e *corruptRow) Error() string { return e.msg }

// classify maps driver errors onto the snapshot taxonomy
func (s *Store) classify(op string, err error) error {
	var bad *corruptRow
	if errors.As(err, &bad) {
		return domain.Corrupt(op, s.path, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrNotADB, sqlite3.ErrCorrupt, sqlite3.ErrFormat:
			return domain.Corrupt(op, s.path, err)
		}
	}
	return domain.IOFailure(op, s.path, err)
}
