/*
award.go - The immutable award configuration

PURPOSE:
  An Award carries every number the engine needs: base hourly rates per
  classification, junior percentages, allowance amounts, break tiers, the
  overtime policy and one or more penalty schedules. It is built once (by the
  factory package, from a YAML or JSON document) and only read afterwards, so
  a single value can serve concurrent calculations.

VERSIONING:
  Rates change every July. Each version is a separate Award with its own
  EffectiveFrom; catalog.go picks the version in force for a date.

SEE ALSO:
  - rates.go: Base rate derivation (table, junior, custom)
  - breaks.go: Break tiers
  - catalog.go: Version selection
  - factory/award.go: Document parsing
*/
package award

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ClassificationInfo describes a classification for display.
type ClassificationInfo struct {
	ID   Classification
	Name string
	// PharmacistTier gates the home medicine review allowance in the UI.
	PharmacistTier bool
}

// AgeInfo describes an age bracket for display.
type AgeInfo struct {
	ID   Age
	Name string
}

// RateTable holds base hourly rates by employment category.
type RateTable struct {
	FullTimePartTime map[Classification]decimal.Decimal
	Casual           map[Classification]decimal.Decimal
}

// JuniorRates reduces adult rates for young employees.
type JuniorRates struct {
	Eligible    []Classification
	Percentages map[Age]decimal.Decimal
}

// AllowanceRates are the fixed allowance amounts.
type AllowanceRates struct {
	HomeMedicineReview    decimal.Decimal // weekly
	LaundryFullTime       decimal.Decimal // weekly
	LaundryPartTimeCasual decimal.Decimal // per shift
	BrokenHill            decimal.Decimal // weekly
	MotorVehiclePerKm     decimal.Decimal
	MealOvertime          decimal.Decimal // per meal
	MealOvertimeExtra     decimal.Decimal // per meal
}

// OvertimePolicy splits weekly hours above the ordinary limit.
type OvertimePolicy struct {
	OrdinaryHours       decimal.Decimal
	FirstTierHours      decimal.Decimal
	FirstTierMultiplier decimal.Decimal
	AfterMultiplier     decimal.Decimal
}

// Award is a versioned, immutable wage award.
type Award struct {
	Code          string
	Name          string
	Version       string
	EffectiveFrom time.Time

	CasualLoading   decimal.Decimal
	Classifications []ClassificationInfo
	Ages            []AgeInfo
	Rates           RateTable
	Junior          JuniorRates
	Allowances      AllowanceRates
	Overtime        OvertimePolicy
	Breaks          BreakPolicy

	Schedules       map[string]Schedule
	DefaultSchedule string
}

// Schedule returns a named penalty schedule. An empty name selects the
// default schedule.
func (a *Award) Schedule(name string) (Schedule, bool) {
	if name == "" {
		name = a.DefaultSchedule
	}
	s, ok := a.Schedules[name]
	return s, ok
}

// ScheduleNames returns the schedule names, default first.
func (a *Award) ScheduleNames() []string {
	names := []string{a.DefaultSchedule}
	for n := range a.Schedules {
		if n != a.DefaultSchedule {
			names = append(names, n)
		}
	}
	sort.Strings(names[1:])
	return names
}

// Classification returns display info for a classification key.
func (a *Award) Classification(id Classification) (ClassificationInfo, bool) {
	for _, c := range a.Classifications {
		if c.ID == id {
			return c, true
		}
	}
	return ClassificationInfo{}, false
}
