package award

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Validate checks an award for internal consistency. All problems are
// reported together in a *ValidationError.
func (a *Award) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if a.Code == "" {
		add("code is required")
	}
	if a.EffectiveFrom.IsZero() {
		add("effective_from is required")
	}
	if !a.CasualLoading.IsPositive() {
		add("casual_loading must be positive")
	}

	for c, r := range a.Rates.FullTimePartTime {
		if r.IsNegative() {
			add("rates.full_time_part_time.%s is negative", c)
		}
	}
	for c, r := range a.Rates.Casual {
		if r.IsNegative() {
			add("rates.casual.%s is negative", c)
		}
	}
	for age, pct := range a.Junior.Percentages {
		if !pct.IsPositive() || pct.GreaterThan(one) {
			add("junior percentage for %s must be in (0, 1]", age)
		}
	}

	ot := a.Overtime
	if ot.OrdinaryHours.IsNegative() || ot.FirstTierHours.IsNegative() {
		add("overtime hours must not be negative")
	}
	if ot.FirstTierMultiplier.LessThan(one) || ot.AfterMultiplier.LessThan(one) {
		add("overtime multipliers must be at least 1")
	}

	for i := 1; i < len(a.Breaks.Tiers); i++ {
		if a.Breaks.Tiers[i].MinHours.LessThan(a.Breaks.Tiers[i-1].MinHours) {
			add("break tiers must be in ascending order")
			break
		}
	}

	if len(a.Schedules) == 0 {
		add("at least one schedule is required")
	}
	if _, ok := a.Schedules[a.DefaultSchedule]; !ok {
		add("default schedule %q is not defined", a.DefaultSchedule)
	}
	for name, s := range a.Schedules {
		for _, rule := range []struct {
			day  string
			rule DayRule
		}{
			{"weekday", s.Weekday},
			{"saturday", s.Saturday},
			{"sunday", s.Sunday},
			{"public_holiday", s.PublicHoliday},
		} {
			for _, b := range rule.rule.Bands {
				if b.From < 0 || b.To > MinutesPerDay || b.From >= b.To {
					add("schedule %s %s band %q has invalid window %s-%s",
						name, rule.day, b.Label, b.From.BoundaryString(), b.To.BoundaryString())
				}
				if b.Multiplier.IsNegative() || b.CasualMultiplier.IsNegative() {
					add("schedule %s %s band %q has a negative multiplier", name, rule.day, b.Label)
				}
			}
			if rule.rule.Fallback.Multiplier.IsZero() && rule.rule.Fallback.CasualMultiplier.IsZero() {
				add("schedule %s %s has no fallback rate", name, rule.day)
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Code: a.Code, Problems: problems}
	}
	return nil
}
