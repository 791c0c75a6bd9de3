package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	store *Store
}

// Create creates a new account
func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *account
	r.store.accounts[account.ID] = &copied
	r.store.accountOrder = append(r.store.accountOrder, account.ID)
	return nil
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

// List retrieves all accounts in creation order
func (r *accountRepository) List(_ context.Context) ([]*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	accounts := make([]*domain.Account, 0, len(r.store.accountOrder))
	for _, id := range r.store.accountOrder {
		copied := *r.store.accounts[id]
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

// Delete removes an account and cascades to all of its observations
func (r *accountRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.store.accounts, id)

	order := r.store.accountOrder[:0]
	for _, existing := range r.store.accountOrder {
		if existing != id {
			order = append(order, existing)
		}
	}
	r.store.accountOrder = order

	// Cascade: the account exclusively owns its observations
	kept := r.store.observations[:0]
	for _, obs := range r.store.observations {
		if obs.AccountID != id {
			kept = append(kept, obs)
		}
	}
	r.store.observations = kept
	return nil
}
