package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Observation represents a point-in-time balance reading for one account.
// Amounts are signed decimals: positive for assets, negative for liabilities.
// Observations are immutable once written; the only mutation is a guarded
// delete through the deletion coordinator. AccountID is a non-owning
// back-reference used for grouping, the account owns the observation.
type Observation struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	Amount     decimal.Decimal
	ObservedAt time.Time
}

// Validate ensures the observation adheres to domain rules
// Returns an error if validation fails
func (o *Observation) Validate() error {
	if o.AccountID == uuid.Nil {
		return errors.New("observation must belong to an account")
	}
	if o.ObservedAt.IsZero() {
		return errors.New("observation timestamp cannot be zero")
	}
	return nil
}

// Day returns the UTC calendar day the observation falls on.
func (o *Observation) Day() Day {
	return DayOf(o.ObservedAt)
}
