package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/stephdawes/moneymash-backend/internal/domain"
)

// Pure accessors over an account's observation history. They all assume the
// repository ordering contract: observations sorted by (ObservedAt, insertion
// order), so the last element is the "current" one and same-timestamp ties
// resolve deterministically.

// Latest returns the amount of the most recent observation.
// The second return is false when the account has no observations.
func Latest(observations []*domain.Observation) (decimal.Decimal, bool) {
	if len(observations) == 0 {
		return decimal.Zero, false
	}
	return observations[len(observations)-1].Amount, true
}

// LatestAsOf returns the amount of the most recent observation on or before
// the given day. An observation timestamped anywhere within the day counts;
// nothing after the day is ever consulted. The second return is false when no
// observation exists at or before the day.
func LatestAsOf(observations []*domain.Observation, day domain.Day) (decimal.Decimal, bool) {
	end := day.End()
	for i := len(observations) - 1; i >= 0; i-- {
		if observations[i].ObservedAt.Before(end) {
			return observations[i].Amount, true
		}
	}
	return decimal.Zero, false
}

// Prior returns the amount of the second-most-recent observation, used for
// change indicators. The second return is false when fewer than two
// observations exist.
func Prior(observations []*domain.Observation) (decimal.Decimal, bool) {
	if len(observations) < 2 {
		return decimal.Zero, false
	}
	return observations[len(observations)-2].Amount, true
}
