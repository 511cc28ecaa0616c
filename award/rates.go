/*
rates.go - Base hourly rate derivation

PURPOSE:
  Works out the base hourly rate a week is paid at, before any penalty
  multiplier. Exactly one source is authoritative:

    above-award      -> the custom rate (non-negative decimal), else zero
    any other key    -> the rate table for the employment type, optionally
                        reduced by the junior percentage

JUNIOR RATES:
  Only junior-eligible classifications are reduced, and only for non-adult
  ages. The percentage applies to the non-casual rate: casual loading is
  taken out, the percentage applied, then the loading put back for casuals.

MISSING DATA:
  Unknown classifications resolve to zero and unknown ages to the adult
  rate. Both are reported in Resolution.Warnings for the caller to log.
*/
package award

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RateSource says where a base rate came from.
type RateSource string

const (
	SourceTable   RateSource = "table"
	SourceJunior  RateSource = "junior"
	SourceCustom  RateSource = "custom"
	SourceMissing RateSource = "missing"
)

// RateResolution is the outcome of a base rate lookup.
type RateResolution struct {
	Rate             decimal.Decimal
	Source           RateSource
	JuniorPercentage decimal.NullDecimal
	Warnings         []string
}

// ParseCustomRate parses an above-award rate. Empty, malformed and negative
// values are rejected.
func ParseCustomRate(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// EffectiveBaseRate picks the rate a shift is priced at: the custom rate for
// above-award employees when it parses, else base. The bool is false when
// no usable rate exists.
func EffectiveBaseRate(base decimal.NullDecimal, c Classification, custom string) (decimal.Decimal, bool) {
	if c.IsAboveAward() {
		if r, ok := ParseCustomRate(custom); ok {
			return r, true
		}
	}
	if !base.Valid || base.Decimal.IsNegative() {
		return decimal.Zero, false
	}
	return base.Decimal, true
}

// TableRate returns the rate table entry for an employment type.
func (a *Award) TableRate(et EmploymentType, c Classification) (decimal.Decimal, bool) {
	table := a.Rates.FullTimePartTime
	if et.IsCasual() {
		table = a.Rates.Casual
	}
	r, ok := table[c]
	return r, ok
}

// NonCasualRate is the full-time/part-time rate used to price overtime.
// Above-award employees use their custom rate.
func (a *Award) NonCasualRate(c Classification, custom string) decimal.Decimal {
	if c.IsAboveAward() {
		r, _ := ParseCustomRate(custom)
		return r
	}
	return a.Rates.FullTimePartTime[c]
}

// JuniorEligible reports whether junior percentages apply to c.
func (a *Award) JuniorEligible(c Classification) bool {
	for _, e := range a.Junior.Eligible {
		if e == c {
			return true
		}
	}
	return false
}

// BaseRate resolves the weekly base hourly rate for a rate context.
func (a *Award) BaseRate(rc RateContext) RateResolution {
	if rc.Classification.IsAboveAward() {
		r, ok := ParseCustomRate(rc.CustomRate)
		if !ok {
			return RateResolution{
				Rate:     decimal.Zero,
				Source:   SourceMissing,
				Warnings: []string{fmt.Sprintf("custom rate %q is not a non-negative number", rc.CustomRate)},
			}
		}
		return RateResolution{Rate: r, Source: SourceCustom}
	}

	rate, ok := a.TableRate(rc.EmploymentType, rc.Classification)
	if !ok {
		return RateResolution{
			Rate:     decimal.Zero,
			Source:   SourceMissing,
			Warnings: []string{fmt.Sprintf("no %s rate for classification %q", rc.EmploymentType, rc.Classification)},
		}
	}

	res := RateResolution{Rate: rate, Source: SourceTable}
	if rc.Age.IsAdult() || !a.JuniorEligible(rc.Classification) {
		return res
	}

	pct, ok := a.Junior.Percentages[rc.Age]
	if !ok {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no junior percentage for age %q, using adult rate", rc.Age))
		return res
	}

	loading := decimal.NewFromInt(1)
	if rc.EmploymentType.IsCasual() && a.CasualLoading.IsPositive() {
		loading = a.CasualLoading
	}
	junior := rate.Div(loading).Mul(pct)
	if rc.EmploymentType.IsCasual() {
		junior = junior.Mul(loading)
	}
	res.Rate = junior
	res.Source = SourceJunior
	res.JuniorPercentage = decimal.NewNullDecimal(pct)
	return res
}
