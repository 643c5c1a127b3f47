package domain

import "time"

// SnapshotVersion is the current snapshot layout. Stores reject other versions.
const SnapshotVersion = 1

// Snapshot is the persisted form of a catalog: the entry table and counters.
// Indices are not stored; they are rebuilt on restore.
type Snapshot struct {
	Version   int             `json:"version" yaml:"version"`
	CatalogID string          `json:"catalog_id" yaml:"catalog_id"`
	LastID    EntryID         `json:"last_id" yaml:"last_id"`
	SavedAt   time.Time       `json:"saved_at" yaml:"saved_at"`
	Entries   []SnapshotEntry `json:"entries" yaml:"entries"`
}

// SnapshotEntry is one entry row in a snapshot
type SnapshotEntry struct {
	ID                  EntryID       `json:"id" yaml:"id"`
	FullPath            string        `json:"full_path" yaml:"full_path"`
	Location            string        `json:"location" yaml:"location"`
	Name                string        `json:"name" yaml:"name"`
	Extension           string        `json:"extension" yaml:"extension"`
	Timestamp           string        `json:"timestamp" yaml:"timestamp"`
	Size                int64         `json:"size" yaml:"size"`
	Checksum            uint64        `json:"checksum" yaml:"checksum"`
	Keywords            []string      `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Metadata            []MetadataTag `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Duplicates          []EntryID     `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	PotentialDuplicates []EntryID     `json:"potential_duplicates,omitempty" yaml:"potential_duplicates,omitempty"`
}
