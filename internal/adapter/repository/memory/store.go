// Package memory provides in-memory implementations of the domain
// repositories. They back the unit and integration tests and the standalone
// (no database) server mode. A single mutex serializes access; the engine
// itself is single-writer, the lock only protects concurrent readers coming
// in through the HTTP adapter.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// Store holds all three aggregates behind one lock. The repository views
// returned by Accounts, Observations and Snapshots share its state, which is
// what makes the account→observation cascade work.
type Store struct {
	mu sync.Mutex

	accounts     map[uuid.UUID]*domain.Account
	accountOrder []uuid.UUID
	// observations stays in insertion order; listing methods sort stably by
	// timestamp so same-timestamp ties keep insertion order
	observations []*domain.Observation
	snapshots    map[domain.Day]*domain.Snapshot
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[uuid.UUID]*domain.Account),
		snapshots: make(map[domain.Day]*domain.Snapshot),
	}
}

// Accounts returns the account repository view over this store.
func (s *Store) Accounts() domain.AccountRepository { return &accountRepository{store: s} }

// Observations returns the observation repository view over this store.
func (s *Store) Observations() domain.ObservationRepository { return &observationRepository{store: s} }

// Snapshots returns the snapshot repository view over this store.
func (s *Store) Snapshots() domain.SnapshotRepository { return &snapshotRepository{store: s} }
