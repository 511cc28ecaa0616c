/*
Package award provides the pay-period decomposition engine.

PURPOSE:
  This package contains the types and algorithms that turn a week of shift
  start/end times into an auditable pay estimate under a wage award. Nothing
  in here performs I/O: the rate tables arrive as an immutable Award value
  (built by the factory package) and every calculation is recomputed from the
  input snapshot.

KEY CONCEPTS IN THIS FILE (types.go):
  - Day: Weekday label, or "Public Holiday" for rate lookup
  - EmploymentType / Classification / Age: The rate context keys
  - Penalty: Multiplier + label returned by the rate resolver
  - Segment: One rate-homogeneous slice of a shift
  - ShiftResult / DailyResult / WeeklySummary: Calculation outputs

DESIGN PRINCIPLES:
  1. Purity: Resolver, decomposer and calculator hold no mutable state
  2. Precision: Uses decimal.Decimal for money and hours
  3. Soft failure: Bad inputs produce zero results, never panics or errors
  4. Auditability: Every cent of a shift is traceable to a segment

USAGE:
  calc := award.NewCalculator(a, logger)
  summary := calc.Calculate(award.WeeklyInput{
      Rate: award.RateContext{
          EmploymentType: award.FullTime,
          Classification: "pharmacy-assistant-1",
          Age:            award.AgeAdult,
      },
      Shifts: []award.ShiftInput{{Day: award.Monday, Start: "09:00", End: "17:00"}},
  })

SEE ALSO:
  - schedule.go: Rate resolver (penalty bands)
  - decompose.go: Segment decomposer
  - weekly.go: Weekly aggregator
*/
package award

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// DAYS
// =============================================================================

// Day is a day label used for rate lookup.
type Day string

const (
	Monday        Day = "Monday"
	Tuesday       Day = "Tuesday"
	Wednesday     Day = "Wednesday"
	Thursday      Day = "Thursday"
	Friday        Day = "Friday"
	Saturday      Day = "Saturday"
	Sunday        Day = "Sunday"
	PublicHoliday Day = "Public Holiday"
)

// WeekDays is the display order of a pay week.
var WeekDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Next returns the day after d in the week sequence. A public holiday stays a
// public holiday, and unknown labels are returned unchanged.
func (d Day) Next() Day {
	if d == PublicHoliday {
		return d
	}
	for i, wd := range WeekDays {
		if wd == d {
			return WeekDays[(i+1)%len(WeekDays)]
		}
	}
	return d
}

// IsWeekday reports whether d is Monday through Friday.
func (d Day) IsWeekday() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday:
		return true
	}
	return false
}

// Valid reports whether d is a known label.
func (d Day) Valid() bool {
	return d == PublicHoliday || d == Saturday || d == Sunday || d.IsWeekday()
}

// =============================================================================
// RATE CONTEXT KEYS
// =============================================================================

type EmploymentType string

const (
	FullTime EmploymentType = "full-time"
	PartTime EmploymentType = "part-time"
	Casual   EmploymentType = "casual"
)

func (e EmploymentType) IsCasual() bool { return e == Casual }

// Classification is a key into the award rate table.
type Classification string

// AboveAward marks an employee paid a custom hourly rate.
const AboveAward Classification = "above-award"

func (c Classification) IsAboveAward() bool { return c == AboveAward }

// Age is an age bracket key into the junior percentage table.
type Age string

const AgeAdult Age = "adult"

func (a Age) IsAdult() bool { return a == "" || a == AgeAdult }

// RateContext identifies who is being paid.
type RateContext struct {
	EmploymentType EmploymentType
	Classification Classification
	Age            Age
	// CustomRate is only read when Classification is AboveAward.
	CustomRate string
}

// =============================================================================
// PENALTY - Resolver output
// =============================================================================

// Penalty is the multiplier applying to a single minute of work.
type Penalty struct {
	Multiplier decimal.Decimal
	Label      string
}

// =============================================================================
// SEGMENTS AND RESULTS
// =============================================================================

type SegmentKind string

const (
	SegmentWorked      SegmentKind = "worked"
	SegmentUnpaidBreak SegmentKind = "unpaid_break"
)

// UnpaidBreakLabel labels the synthetic break deduction entry.
const UnpaidBreakLabel = "Unpaid Break"

// Segment is a contiguous slice of a shift. Start and End are "HH:MM"
// clock strings; they are empty on the unpaid break entry.
type Segment struct {
	Kind       SegmentKind
	Start      string
	End        string
	Day        Day
	Hours      decimal.Decimal
	BaseRate   decimal.Decimal
	Multiplier decimal.Decimal
	Rate       decimal.Decimal // BaseRate × Multiplier
	Label      string
	Pay        decimal.Decimal
}

// ShiftResult is the decomposition of one shift.
type ShiftResult struct {
	Hours     decimal.Decimal // net of unpaid break
	Pay       decimal.Decimal // net of unpaid break
	Breakdown []Segment
	Overnight bool
	Break     BreakAllowance
}

// WorkedSegments returns the breakdown without the unpaid break entry.
func (r ShiftResult) WorkedSegments() []Segment {
	out := make([]Segment, 0, len(r.Breakdown))
	for _, s := range r.Breakdown {
		if s.Kind == SegmentWorked {
			out = append(out, s)
		}
	}
	return out
}

// ShiftInput is one day record of the weekly roster.
type ShiftInput struct {
	Day           Day
	Start         string
	End           string
	PublicHoliday bool
}

// RateDay returns the label used for rate lookup.
func (s ShiftInput) RateDay() Day {
	if s.PublicHoliday {
		return PublicHoliday
	}
	return s.Day
}

// HasTimes reports whether both times are populated.
func (s ShiftInput) HasTimes() bool { return s.Start != "" && s.End != "" }

// DailyResult is a decomposed day of the week.
type DailyResult struct {
	Day           Day
	PublicHoliday bool
	Start         string
	End           string
	Hours         decimal.Decimal
	Pay           decimal.Decimal
	Segments      []Segment
}

// AllowanceLine is one allowance in the weekly summary.
type AllowanceLine struct {
	Name   string
	Amount decimal.Decimal
}

// WeeklySummary is the final result of a weekly calculation.
type WeeklySummary struct {
	AwardCode          string
	AwardVersion       string
	BaseRate           decimal.Decimal
	TotalHours         decimal.Decimal
	TotalPay           decimal.Decimal // ordinary pay after overtime hours are removed
	OvertimeHours      decimal.Decimal
	OvertimePay        decimal.Decimal
	Allowances         decimal.Decimal
	Total              decimal.Decimal
	DailyBreakdown     []DailyResult
	AllowanceBreakdown []AllowanceLine
}

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

var sixty = decimal.NewFromInt(60)

// round2 rounds half away from zero to cents.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// minutesToHours converts a minute count to decimal hours.
func minutesToHours(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(sixty)
}
