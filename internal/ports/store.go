package ports

import (
	"context"

	"photocat/internal/domain"
)

// SnapshotStore persists whole catalog snapshots.
//
// Load reports domain.ErrSnapshotAbsent when nothing has been saved yet,
// domain.ErrSnapshotCorrupt for unreadable or incompatible data and
// domain.ErrPersistenceIO for environmental failures.
type SnapshotStore interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
	Location() string
	Close() error
}
