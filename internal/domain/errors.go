package domain

import "errors"

var (
	// ErrLastObservation is returned when a caller attempts to delete an
	// account's only observation. An account may never be left with zero
	// history, so the operation is refused and nothing changes.
	ErrLastObservation = errors.New("cannot delete the only observation for this account: an account must keep at least one balance entry")

	// ErrAccountNotFound is returned when an account ID resolves to nothing.
	ErrAccountNotFound = errors.New("account not found")

	// ErrObservationNotFound is returned when an observation ID resolves to nothing.
	ErrObservationNotFound = errors.New("observation not found")

	// ErrInvalidAccountType is returned when an account names a type outside
	// the known classification set.
	ErrInvalidAccountType = errors.New("unknown account type")
)

// PersistenceError wraps a failure from the durable store. It is surfaced to
// the caller rather than retried: retrying without understanding the cause
// risks double-writes.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure during " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
