package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	store *Store
}

// Add creates a new snapshot. The store keys snapshots by day, so adding a
// second snapshot for an existing day is a caller bug and is rejected.
func (r *snapshotRepository) Add(_ context.Context, snap *domain.Snapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.snapshots[snap.Day]; exists {
		return errors.New("snapshot already exists for day " + snap.Day.String())
	}
	copied := *snap
	r.store.snapshots[snap.Day] = &copied
	return nil
}

// GetByDay retrieves the snapshot for one calendar day, nil when absent
func (r *snapshotRepository) GetByDay(_ context.Context, day domain.Day) (*domain.Snapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap, ok := r.store.snapshots[day]
	if !ok {
		return nil, nil
	}
	copied := *snap
	return &copied, nil
}

// List retrieves all snapshots ordered by day ascending
func (r *snapshotRepository) List(_ context.Context) ([]*domain.Snapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshots := make([]*domain.Snapshot, 0, len(r.store.snapshots))
	for _, snap := range r.store.snapshots {
		copied := *snap
		snapshots = append(snapshots, &copied)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Day.Before(snapshots[j].Day)
	})
	return snapshots, nil
}

// Count returns the number of stored snapshots
func (r *snapshotRepository) Count(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return len(r.store.snapshots), nil
}

// Update replaces the net worth recorded for an existing snapshot
func (r *snapshotRepository) Update(_ context.Context, snap *domain.Snapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.snapshots[snap.Day]; !ok {
		return errors.New("no snapshot to update for day " + snap.Day.String())
	}
	copied := *snap
	r.store.snapshots[snap.Day] = &copied
	return nil
}

// DeleteFrom removes every snapshot with day >= from
func (r *snapshotRepository) DeleteFrom(_ context.Context, from domain.Day) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for day := range r.store.snapshots {
		if !day.Before(from) {
			delete(r.store.snapshots, day)
		}
	}
	return nil
}

// DeleteAll removes every snapshot
func (r *snapshotRepository) DeleteAll(_ context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.snapshots = make(map[domain.Day]*domain.Snapshot)
	return nil
}
