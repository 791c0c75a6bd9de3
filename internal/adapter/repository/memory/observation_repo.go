package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// observationRepository implements domain.ObservationRepository
type observationRepository struct {
	store *Store
}

// Add creates a new observation
func (r *observationRepository) Add(_ context.Context, obs *domain.Observation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *obs
	r.store.observations = append(r.store.observations, &copied)
	return nil
}

// GetByID retrieves an observation by its ID
func (r *observationRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Observation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, obs := range r.store.observations {
		if obs.ID == id {
			copied := *obs
			return &copied, nil
		}
	}
	return nil, domain.ErrObservationNotFound
}

// ListByAccount retrieves an account's observations ordered by
// (ObservedAt, insertion order)
func (r *observationRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*domain.Observation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.sorted(func(obs *domain.Observation) bool {
		return obs.AccountID == accountID
	}), nil
}

// ListAll retrieves every observation ordered by (ObservedAt, insertion order)
func (r *observationRepository) ListAll(_ context.Context) ([]*domain.Observation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.sorted(func(*domain.Observation) bool { return true }), nil
}

// ListFrom retrieves every observation with ObservedAt >= from, ordered by
// (ObservedAt, insertion order)
func (r *observationRepository) ListFrom(_ context.Context, from time.Time) ([]*domain.Observation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.sorted(func(obs *domain.Observation) bool {
		return !obs.ObservedAt.Before(from)
	}), nil
}

// CountByAccount returns the number of observations an account holds
func (r *observationRepository) CountByAccount(_ context.Context, accountID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	count := 0
	for _, obs := range r.store.observations {
		if obs.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

// Delete removes a single observation
func (r *observationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, obs := range r.store.observations {
		if obs.ID == id {
			r.store.observations = append(r.store.observations[:i], r.store.observations[i+1:]...)
			return nil
		}
	}
	return domain.ErrObservationNotFound
}

// sorted copies the observations matching the filter and sorts them stably by
// timestamp, preserving insertion order for ties. Callers hold the lock.
func (r *observationRepository) sorted(match func(*domain.Observation) bool) []*domain.Observation {
	var result []*domain.Observation
	for _, obs := range r.store.observations {
		if match(obs) {
			copied := *obs
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ObservedAt.Before(result[j].ObservedAt)
	})
	return result
}
