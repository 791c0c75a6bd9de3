package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is a derived, cached fact: the aggregate net worth as of one
// calendar day under the canonical full policy. At most one snapshot exists
// per day. Snapshots are created and destroyed only by the snapshot manager
// in response to observation changes; they have no user-facing lifecycle.
type Snapshot struct {
	ID       uuid.UUID
	Day      Day
	NetWorth decimal.Decimal
}
