/*
decompose.go - Segment decomposer

PURPOSE:
  Splits one shift into rate-homogeneous segments, prices each minute with
  the rate resolver and deducts the unpaid break.

ALGORITHM:
  1. Resolve the base rate (custom rate for above-award, else the request's)
  2. Parse start/end; if end is not after start the shift runs overnight
     and end moves to the next day
  3. Walk from start to end, cutting at every schedule boundary
     (00:00, band edges, 24:00) that falls inside the shift
  4. Inside each segment sum base × multiplier for every minute and divide
     by 60. The per-minute walk tolerates band edges that do not line up
     with the segment cuts. Cost is O(shift minutes), at most 1440.
  5. Subtract the unpaid break at the ordinary rate and append an
     "Unpaid Break" entry with negative pay

DAY ROLLOVER:
  Minutes past midnight of an overnight shift use Day.Next() for rate
  lookup (Sunday -> Monday). "Public Holiday" never rolls over.

SOFT FAILURE:
  Missing or malformed times and a missing or negative base rate return a
  zero ShiftResult and log a warning. Nothing here returns an error.

SEE ALSO:
  - schedule.go: Resolve
  - breaks.go: BreakPolicy
  - weekly.go: Calls Decompose for each day
*/
package award

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShiftRequest is the input of a single shift decomposition.
type ShiftRequest struct {
	Day            Day
	Start          string
	End            string
	BaseRate       decimal.NullDecimal
	EmploymentType EmploymentType
	CustomRate     string
	Classification Classification
}

// Decomposer splits shifts into priced segments.
type Decomposer struct {
	Schedule Schedule
	Breaks   BreakPolicy
	Logger   *zap.Logger

	boundaries []Clock
}

// NewDecomposer creates a decomposer. A nil logger discards diagnostics.
func NewDecomposer(schedule Schedule, breaks BreakPolicy, logger *zap.Logger) *Decomposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decomposer{
		Schedule:   schedule,
		Breaks:     breaks,
		Logger:     logger,
		boundaries: schedule.Boundaries(),
	}
}

// Decompose prices one shift.
func (d *Decomposer) Decompose(req ShiftRequest) ShiftResult {
	base, ok := EffectiveBaseRate(req.BaseRate, req.Classification, req.CustomRate)
	if req.Start == "" || req.End == "" || !ok {
		d.Logger.Warn("skipping shift with missing time or rate",
			zap.String("day", string(req.Day)),
			zap.String("start", req.Start),
			zap.String("end", req.End),
			zap.String("classification", string(req.Classification)),
			zap.Bool("rate_valid", ok),
		)
		return zeroShift()
	}

	if !req.Day.Valid() {
		d.Logger.Warn("skipping shift with unknown day", zap.String("day", string(req.Day)))
		return zeroShift()
	}

	start, err := ParseClock(req.Start)
	if err != nil {
		d.Logger.Warn("skipping shift with invalid start", zap.String("day", string(req.Day)), zap.Error(err))
		return zeroShift()
	}
	end, err := ParseClock(req.End)
	if err != nil {
		d.Logger.Warn("skipping shift with invalid end", zap.String("day", string(req.Day)), zap.Error(err))
		return zeroShift()
	}

	from, to := int(start), int(end)
	overnight := false
	if to <= from {
		to += MinutesPerDay
		overnight = true
	}
	duration := to - from
	brk := d.Breaks.For(duration)

	var (
		breakdown []Segment
		totalPay  = decimal.Zero
	)
	for cur := from; cur < to; {
		segEnd := d.nextBoundary(cur)
		if segEnd > to {
			segEnd = to
		}
		if segEnd <= cur {
			// Cursor sits on a boundary; step one minute to make progress.
			segEnd = cur + 1
		}

		day := dayAt(req.Day, cur)
		rateMinutes := decimal.Zero
		for m := cur; m < segEnd; m++ {
			p := d.Schedule.Resolve(dayAt(req.Day, m), Clock(m%MinutesPerDay), req.EmploymentType, req.Classification)
			rateMinutes = rateMinutes.Add(base.Mul(p.Multiplier))
		}
		pay := rateMinutes.Div(sixty)

		head := d.Schedule.Resolve(day, Clock(cur%MinutesPerDay), req.EmploymentType, req.Classification)
		breakdown = append(breakdown, Segment{
			Kind:       SegmentWorked,
			Start:      Clock(cur).String(),
			End:        Clock(segEnd).String(),
			Day:        day,
			Hours:      round2(minutesToHours(segEnd - cur)),
			BaseRate:   base,
			Multiplier: head.Multiplier,
			Rate:       base.Mul(head.Multiplier),
			Label:      head.Label,
			Pay:        round2(pay),
		})
		totalPay = totalPay.Add(pay)
		cur = segEnd
	}

	unpaid := brk.UnpaidHours()
	deduction := base.Mul(unpaid)
	totalPay = totalPay.Sub(deduction)
	if unpaid.IsPositive() {
		breakdown = append(breakdown, Segment{
			Kind:       SegmentUnpaidBreak,
			Day:        req.Day,
			Hours:      round2(unpaid),
			BaseRate:   base,
			Multiplier: decimal.NewFromInt(1),
			Rate:       base,
			Label:      UnpaidBreakLabel,
			Pay:        round2(deduction).Neg(),
		})
	}

	return ShiftResult{
		Hours:     round2(minutesToHours(duration).Sub(unpaid)),
		Pay:       round2(totalPay),
		Breakdown: breakdown,
		Overnight: overnight,
		Break:     brk,
	}
}

// nextBoundary returns the first boundary strictly after cur, in absolute
// minutes from the shift's start day.
func (d *Decomposer) nextBoundary(cur int) int {
	offset := cur - cur%MinutesPerDay
	at := Clock(cur % MinutesPerDay)
	for _, b := range d.boundaries {
		if b > at {
			return offset + int(b)
		}
	}
	return offset + MinutesPerDay
}

// dayAt returns the rate-lookup day of an absolute minute.
func dayAt(day Day, minute int) Day {
	if minute >= MinutesPerDay {
		return day.Next()
	}
	return day
}

func zeroShift() ShiftResult {
	return ShiftResult{Hours: decimal.Zero, Pay: decimal.Zero, Breakdown: []Segment{}}
}
