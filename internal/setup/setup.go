// Package setup builds a catalog session from configuration, choosing the
// snapshot store and the filesystem adapters.
package setup

import (
	"context"

	"github.com/rs/zerolog"

	"photocat/internal/adapters/filesystem"
	"photocat/internal/adapters/snapshot"
	"photocat/internal/adapters/sqlite"
	"photocat/internal/application"
	"photocat/internal/config"
	"photocat/internal/ports"
)

// NewStore returns the snapshot store for the configured catalog path
func NewStore(cfg *config.Config) ports.SnapshotStore {
	if cfg.StoreKind() == config.StoreSQLite {
		return sqlite.NewStore(cfg.DB)
	}
	return snapshot.NewOSFileStore(cfg.DB)
}

// OpenSession opens the configured catalog on the real filesystem.
// With reset, a corrupt catalog is replaced by an empty one.
func OpenSession(ctx context.Context, cfg *config.Config, reset bool, log zerolog.Logger) (*application.Session, error) {
	prober := filesystem.NewOSProber(cfg.ImageExtensions, log)
	return application.OpenSession(ctx, application.SessionConfig{
		Store:      NewStore(cfg),
		Prober:     prober,
		Comparator: filesystem.NewComparator(prober.Fs()),
		Logger:     log,
		Workers:    cfg.Workers,
		Reset:      reset,
	})
}
