package server

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/mrhapile/hvac-diagnoser/pkg/engine"
)

// Loader builds a fresh snapshot, typically from catalog files.
type Loader func() (*engine.Snapshot, error)

// Store holds the snapshot used by new requests. Swapping it never
// affects requests already holding the previous one.
type Store struct {
	current atomic.Pointer[engine.Snapshot]
	load    Loader
}

// NewStore starts from an already loaded snapshot. load may be nil when
// the catalogs never change.
func NewStore(initial *engine.Snapshot, load Loader) (*Store, error) {
	if initial == nil {
		return nil, errors.New("initial snapshot is required")
	}
	s := &Store{load: load}
	s.current.Store(initial)
	return s, nil
}

// Current returns the snapshot a request should use from start to finish.
func (s *Store) Current() *engine.Snapshot {
	return s.current.Load()
}

// Reload loads a new snapshot and swaps it in. On failure the previous
// snapshot stays active.
func (s *Store) Reload() error {
	if s.load == nil {
		return errors.New("store has no loader")
	}
	snap, err := s.load()
	if err != nil {
		catalogReloads.WithLabelValues("error").Inc()
		return err
	}
	s.current.Store(snap)
	catalogReloads.WithLabelValues("ok").Inc()
	slog.Info("Catalogs reloaded",
		"refrigerants", len(snap.Refrigerants.IDs()),
		"signatures", snap.Signatures.Len())
	return nil
}
