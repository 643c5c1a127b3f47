package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"photocat/internal/catalog"
	"photocat/internal/domain"
	"photocat/internal/ports"
)

// DefaultWorkers bounds parallel probing when no worker count is configured
const DefaultWorkers = 4

// SessionConfig wires a session to its adapters
type SessionConfig struct {
	Store      ports.SnapshotStore
	Prober     ports.FileProber
	Comparator ports.ContentComparator
	Logger     zerolog.Logger
	Workers    int

	// Reset starts from an empty catalog when the stored one is corrupt.
	// The corrupt data is only overwritten by the next save.
	Reset bool
}

// Session is one open catalog plus the store it came from
type Session struct {
	cat     *catalog.Catalog
	store   ports.SnapshotStore
	prober  ports.FileProber
	workers int
	log     zerolog.Logger
}

// OpenSession loads the catalog from the store. A store with nothing saved
// yields an empty catalog. A corrupt store is an error unless Reset is set.
func OpenSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if cfg.Store == nil {
		return nil, &ValidationError{Field: "store", Message: "store is required"}
	}
	if cfg.Prober == nil {
		return nil, &ValidationError{Field: "prober", Message: "prober is required"}
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	log := cfg.Logger.With().Str("store", cfg.Store.Location()).Logger()
	opts := []catalog.Option{
		catalog.WithComparator(cfg.Comparator),
		catalog.WithLogger(log),
	}

	cat, err := load(ctx, cfg.Store, opts)
	switch {
	case err == nil:
		log.Debug().Int("count", cat.Len()).Msg("catalog loaded")
	case errors.Is(err, domain.ErrSnapshotAbsent):
		log.Info().Msg("no saved catalog, starting empty")
		cat = catalog.New(opts...)
	case errors.Is(err, domain.ErrSnapshotCorrupt) && cfg.Reset:
		log.Warn().Err(err).Msg("discarding corrupt catalog")
		cat = catalog.New(opts...)
	default:
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	return &Session{
		cat:     cat,
		store:   cfg.Store,
		prober:  cfg.Prober,
		workers: workers,
		log:     log,
	}, nil
}

func load(ctx context.Context, store ports.SnapshotStore, opts []catalog.Option) (*catalog.Catalog, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Restore(snap, opts...)
	if err != nil {
		return nil, domain.Corrupt("load", store.Location(), err)
	}
	return cat, nil
}

// Catalog returns the open catalog
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Prober returns the filesystem prober
func (s *Session) Prober() ports.FileProber { return s.prober }

// Location is where the catalog is persisted
func (s *Session) Location() string { return s.store.Location() }

// Workers is the probe parallelism
func (s *Session) Workers() int { return s.workers }

// Logger returns the session logger
func (s *Session) Logger() zerolog.Logger { return s.log }

// Save writes the catalog when it has unsaved changes and reports whether
// anything was written. A failed save leaves the catalog dirty.
func (s *Session) Save(ctx context.Context) (bool, error) {
	if !s.cat.IsDirty() {
		return false, nil
	}
	if err := s.store.Save(ctx, s.cat.Snapshot()); err != nil {
		return false, fmt.Errorf("failed to save catalog: %w", err)
	}
	s.cat.MarkSaved()
	s.log.Debug().Int("count", s.cat.Len()).Msg("catalog saved")
	return true, nil
}

// Close releases the store
func (s *Session) Close() error {
	return s.store.Close()
}
