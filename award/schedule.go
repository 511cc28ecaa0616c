/*
schedule.go - Rate resolver (penalty bands by day and time)

PURPOSE:
  A Schedule answers one question: for a given day label, minute of the day,
  employment type and classification, which multiplier applies to the base
  hourly rate and how should it be described?

STRUCTURE:
  Schedule
    ├── Weekday        DayRule (Monday–Friday)
    ├── Saturday       DayRule
    ├── Sunday         DayRule
    └── PublicHoliday  DayRule

  DayRule
    ├── CasualFlat  *Band  (optional; wins over Bands for casuals)
    ├── Bands       []Band (half-open [From, To), first match wins)
    └── Fallback    Band   (minutes no band covers)

TIE-BREAK:
  Bands are half-open, so a boundary minute belongs to the later band.
  19:00 on a weekday is "evening", 18:59 is ordinary.

CASUALS:
  Casual employees get their own multiplier per band rather than a loading
  stacked on the non-casual one. A band may still declare CasualLoading, a
  factor applied on top of CasualMultiplier (the Sunday day band does).

ABOVE AWARD:
  The classification never exempts a minute from the penalty lookup. Only a
  CasualFlat band can list exempt classifications (the legacy table exempts
  above-award employees from its flat casual loading).

USAGE:
  p := schedule.Resolve(award.Saturday, award.MustClock("09:30"), award.Casual, "pharmacist")
  // p.Multiplier = 1.5, p.Label = "Saturday Day (150%)"

SEE ALSO:
  - decompose.go: Calls Resolve for every minute of a shift
  - pharmacy/schedules.go: Current and legacy MA000012 schedules
*/
package award

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BAND
// =============================================================================

// Band is a time-of-day window with its multipliers.
type Band struct {
	From  Clock
	To    Clock
	Label string

	Multiplier       decimal.Decimal // full-time and part-time
	CasualMultiplier decimal.Decimal
	// CasualLoading multiplies CasualMultiplier when non-zero.
	CasualLoading decimal.Decimal
	// CasualLabel replaces Label for casual employees when set.
	CasualLabel string

	// ExemptClassifications skip this band (CasualFlat only).
	ExemptClassifications []Classification
}

// Contains reports whether the clock falls in [From, To).
func (b Band) Contains(at Clock) bool {
	return at >= b.From && at < b.To
}

// Penalty returns the band's penalty for an employment type.
func (b Band) Penalty(et EmploymentType) Penalty {
	if !et.IsCasual() {
		return Penalty{Multiplier: b.Multiplier, Label: b.Label}
	}
	m := b.CasualMultiplier
	if !b.CasualLoading.IsZero() {
		m = m.Mul(b.CasualLoading)
	}
	label := b.Label
	if b.CasualLabel != "" {
		label = b.CasualLabel
	}
	return Penalty{Multiplier: m, Label: label}
}

func (b Band) exempts(c Classification) bool {
	for _, x := range b.ExemptClassifications {
		if x == c {
			return true
		}
	}
	return false
}

// =============================================================================
// DAY RULE
// =============================================================================

// DayRule holds the bands for one category of day.
type DayRule struct {
	CasualFlat *Band
	Bands      []Band
	Fallback   Band
}

// Resolve returns the penalty for a minute of this day.
func (r DayRule) Resolve(at Clock, et EmploymentType, c Classification) Penalty {
	if et.IsCasual() && r.CasualFlat != nil && !r.CasualFlat.exempts(c) {
		return r.CasualFlat.Penalty(et)
	}
	for _, b := range r.Bands {
		if b.Contains(at) {
			return b.Penalty(et)
		}
	}
	return r.Fallback.Penalty(et)
}

// =============================================================================
// SCHEDULE
// =============================================================================

// Schedule is a complete penalty rate table.
type Schedule struct {
	Name          string
	Description   string
	Weekday       DayRule
	Saturday      DayRule
	Sunday        DayRule
	PublicHoliday DayRule
}

// Rule returns the day rule that applies to a day label. Unknown labels use
// the weekday rule.
func (s Schedule) Rule(day Day) DayRule {
	switch day {
	case PublicHoliday:
		return s.PublicHoliday
	case Saturday:
		return s.Saturday
	case Sunday:
		return s.Sunday
	default:
		return s.Weekday
	}
}

// Resolve returns the multiplier and label for one minute of work.
func (s Schedule) Resolve(day Day, at Clock, et EmploymentType, c Classification) Penalty {
	return s.Rule(day).Resolve(at, et, c)
}

// ResolveAt is Resolve for an "HH:MM" string.
func (s Schedule) ResolveAt(day Day, at string, et EmploymentType, c Classification) (Penalty, error) {
	clock, err := ParseClock(at)
	if err != nil {
		return Penalty{}, err
	}
	return s.Resolve(day, clock, et, c), nil
}

// Boundaries returns every band edge in the schedule within a day, sorted
// and including 00:00 and 24:00.
func (s Schedule) Boundaries() []Clock {
	seen := map[Clock]bool{0: true, MinutesPerDay: true}
	for _, r := range []DayRule{s.Weekday, s.Saturday, s.Sunday, s.PublicHoliday} {
		for _, b := range r.Bands {
			seen[b.From] = true
			seen[b.To] = true
		}
	}
	out := make([]Clock, 0, len(seen))
	for c := range seen {
		if c >= 0 && c <= MinutesPerDay {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
