package domain

// InclusionPolicy controls which account types participate in an aggregate.
// It is passed explicitly into every aggregation call; nothing in the engine
// reads toggle state from anywhere else, so the same computation is
// reproducible in tests and across components.
type InclusionPolicy struct {
	IncludePensions bool
	IncludeMortgage bool
}

// FullPolicy returns the canonical everything-included policy.
// The snapshot pipeline always records full net worth under this policy,
// independent of whatever filtered view the UI is currently showing; live
// summary and chart calls take their own per-request policy instead.
func FullPolicy() InclusionPolicy {
	return InclusionPolicy{IncludePensions: true, IncludeMortgage: true}
}
