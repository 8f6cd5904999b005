package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store holds the catalog snapshot shared by concurrent requests. Snapshots
// are replaced whole and never mutated.
type Store struct {
	source  Source
	current atomic.Pointer[Catalog]
	logger  *zap.Logger
}

// NewStore builds a store seeded with initial. Refresh replaces the snapshot
// from source.
func NewStore(source Source, initial *Catalog, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if initial == nil {
		initial = Default()
	}
	if source == nil {
		source = NewStaticSource(initial)
	}

	s := &Store{source: source, logger: logger}
	s.current.Store(initial)
	return s
}

// Current returns the catalog snapshot to use for one calculation.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Refresh loads a new snapshot. On failure the previous snapshot stays active.
func (s *Store) Refresh(ctx context.Context) error {
	next, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Warn("catalog refresh failed", zap.String("source", s.source.Name()), zap.Error(err))
		return fmt.Errorf("refresh catalog from %s: %w", s.source.Name(), err)
	}

	s.current.Store(next)
	s.logger.Info("catalog refreshed", zap.String("source", s.source.Name()), zap.Int("entries", next.Len()))
	return nil
}
