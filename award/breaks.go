package award

import "github.com/shopspring/decimal"

// =============================================================================
// BREAKS - Unpaid break deduction by shift length
// =============================================================================

// BreakTier applies to shifts at least MinHours long (strictly longer when
// Exclusive is set).
type BreakTier struct {
	MinHours      decimal.Decimal
	Exclusive     bool
	PaidMinutes   int
	UnpaidMinutes int
}

func (t BreakTier) matches(hours decimal.Decimal) bool {
	if t.Exclusive {
		return hours.GreaterThan(t.MinHours)
	}
	return hours.GreaterThanOrEqual(t.MinHours)
}

// BreakPolicy holds tiers in ascending MinHours order. The last matching
// tier wins.
type BreakPolicy struct {
	Tiers []BreakTier
}

// BreakAllowance is the break entitlement of one shift.
type BreakAllowance struct {
	PaidMinutes   int
	UnpaidMinutes int
}

// UnpaidHours returns the deduction in hours.
func (b BreakAllowance) UnpaidHours() decimal.Decimal {
	return minutesToHours(b.UnpaidMinutes)
}

// For returns the break entitlement of a shift of the given length.
func (p BreakPolicy) For(durationMinutes int) BreakAllowance {
	hours := minutesToHours(durationMinutes)
	var out BreakAllowance
	for _, t := range p.Tiers {
		if t.matches(hours) {
			out = BreakAllowance{PaidMinutes: t.PaidMinutes, UnpaidMinutes: t.UnpaidMinutes}
		}
	}
	return out
}
