/*
weekly.go - Weekly aggregator

PURPOSE:
  Folds the decomposition of every rostered day into a WeeklySummary, then
  adds overtime and allowances.

FLOW:
  1. Resolve the base rate (rates.go)
  2. Decompose each day that has both times, summing hours and pay
  3. Overtime (non-casual only): hours past the ordinary limit are split
     into a first tier (1.5×) and the remainder (2.0×) of the non-casual
     rate; the same hours at the base rate come out of ordinary pay
  4. Price the allowance selection
  5. Total = ordinary pay + overtime pay + allowances

OVERTIME SIMPLIFICATION:
  Overtime is computed on the week total and ignores which day or segment
  the extra hours were worked in, and any penalty already paid on them.

IDEMPOTENCE:
  Calculate has no side effects besides logging. Identical inputs give
  identical summaries.
*/
package award

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WeeklyInput is an immutable snapshot of the calculator form.
type WeeklyInput struct {
	Rate       RateContext
	Shifts     []ShiftInput
	Allowances AllowanceSelection
	// Schedule names the penalty schedule; empty uses the award default.
	Schedule string
}

// Calculator computes weekly pay under one award version.
type Calculator struct {
	Award  *Award
	Logger *zap.Logger
}

// NewCalculator creates a calculator. A nil logger discards diagnostics.
func NewCalculator(a *Award, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{Award: a, Logger: logger}
}

// Decomposer returns a decomposer for the named schedule, falling back to
// the award default when the name is unknown.
func (c *Calculator) Decomposer(schedule string) *Decomposer {
	s, ok := c.Award.Schedule(schedule)
	if !ok {
		c.Logger.Warn("unknown schedule, using default",
			zap.String("schedule", schedule),
			zap.String("default", c.Award.DefaultSchedule),
		)
		s, _ = c.Award.Schedule("")
	}
	return NewDecomposer(s, c.Award.Breaks, c.Logger)
}

// Calculate computes the weekly summary.
func (c *Calculator) Calculate(in WeeklyInput) WeeklySummary {
	rc := in.Rate
	res := c.Award.BaseRate(rc)
	for _, w := range res.Warnings {
		c.Logger.Warn("base rate", zap.String("warning", w))
	}
	baseRate := res.Rate
	dec := c.Decomposer(in.Schedule)

	totalHours := decimal.Zero
	totalPay := decimal.Zero
	daily := make([]DailyResult, 0, len(in.Shifts))
	for _, s := range in.Shifts {
		if !s.HasTimes() {
			continue
		}
		r := dec.Decompose(ShiftRequest{
			Day:            s.RateDay(),
			Start:          s.Start,
			End:            s.End,
			BaseRate:       decimal.NewNullDecimal(baseRate),
			EmploymentType: rc.EmploymentType,
			CustomRate:     rc.CustomRate,
			Classification: rc.Classification,
		})
		totalHours = totalHours.Add(r.Hours)
		totalPay = totalPay.Add(r.Pay)
		daily = append(daily, DailyResult{
			Day:           s.Day,
			PublicHoliday: s.PublicHoliday,
			Start:         s.Start,
			End:           s.End,
			Hours:         r.Hours,
			Pay:           r.Pay,
			Segments:      r.Breakdown,
		})
	}

	overtimeHours, overtimePay := decimal.Zero, decimal.Zero
	ot := c.Award.Overtime
	if !rc.EmploymentType.IsCasual() && totalHours.GreaterThan(ot.OrdinaryHours) {
		overtimeHours = totalHours.Sub(ot.OrdinaryHours)
		first := decimal.Min(overtimeHours, ot.FirstTierHours)
		rest := overtimeHours.Sub(first)
		nonCasual := c.Award.NonCasualRate(rc.Classification, rc.CustomRate)
		overtimePay = first.Mul(nonCasual).Mul(ot.FirstTierMultiplier).
			Add(rest.Mul(nonCasual).Mul(ot.AfterMultiplier))
		totalPay = totalPay.Sub(overtimeHours.Mul(baseRate))
	}

	lines := c.Award.Allowances.Allowances(in.Allowances, rc.EmploymentType, len(daily))
	allowances := decimal.Zero
	for i := range lines {
		lines[i].Amount = round2(lines[i].Amount)
		allowances = allowances.Add(lines[i].Amount)
	}

	summary := WeeklySummary{
		AwardCode:          c.Award.Code,
		AwardVersion:       c.Award.Version,
		BaseRate:           baseRate,
		TotalHours:         round2(totalHours),
		TotalPay:           round2(totalPay),
		OvertimeHours:      round2(overtimeHours),
		OvertimePay:        round2(overtimePay),
		Allowances:         round2(allowances),
		DailyBreakdown:     daily,
		AllowanceBreakdown: lines,
	}
	summary.Total = summary.TotalPay.Add(summary.OvertimePay).Add(summary.Allowances)

	c.Logger.Debug("weekly pay calculated",
		zap.String("classification", string(rc.Classification)),
		zap.String("employment_type", string(rc.EmploymentType)),
		zap.Int("days", len(daily)),
		zap.String("total", summary.Total.StringFixed(2)),
	)
	return summary
}
