// Package store persists the inventory snapshot in an embedded Badger database.
//
// The durable surface is deliberately small: a single named slot holding
// the serialized list name and persisted rooms. The draft and the
// custom-entry target are session-only and never written. The store is a
// convenience cache, not a source of truth during a session; callers treat
// writes as best-effort.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/luxlistapp/luxlist-server/internal/domain"
)

// snapshotKey is the single slot holding the serialized inventory.
const snapshotKey = "inventory:snapshot"

// Snapshot is the durable slice of the list-level state.
type Snapshot struct {
	ListName string         `json:"list_name"`
	Rooms    []*domain.Room `json:"rooms"`
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store instance backed by the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Badger database opened successfully", "path", path)

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadSnapshot reads the saved inventory snapshot. A missing slot yields an
// empty snapshot. A slot that fails to decode is treated the same way and
// logged; corrupt durable state must never prevent startup.
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	empty := &Snapshot{Rooms: []*domain.Room{}}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get snapshot: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	if data == nil {
		return empty, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("discarding undecodable inventory snapshot", "error", err)
		return empty, nil
	}
	if snap.Rooms == nil {
		snap.Rooms = []*domain.Room{}
	}
	return &snap, nil
}

// SaveSnapshot overwrites the snapshot slot wholesale.
func (s *Store) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKey), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// DeleteSnapshot clears the snapshot slot, used by the full reset.
func (s *Store) DeleteSnapshot(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(snapshotKey))
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
