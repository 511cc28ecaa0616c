package award_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/pharmacy"
)

func ftShift(day award.Day, start, end string) award.ShiftRequest {
	return award.ShiftRequest{
		Day:            day,
		Start:          start,
		End:            end,
		BaseRate:       rate("25.99"),
		EmploymentType: award.FullTime,
		Classification: pharmacy.AssistantLevel1,
	}
}

func workedHours(r award.ShiftResult) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range r.WorkedSegments() {
		sum = sum.Add(s.Hours)
	}
	return sum
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestDecompose_OrdinaryWeekdayShift(t *testing.T) {
	// GIVEN: Assistant level 1 full-time, Monday 09:00-17:00
	// WHEN: Decomposed
	// THEN: One ordinary segment of 8h and a 30 minute unpaid break

	r := newDecomposer(t, currentSchedule(t)).Decompose(ftShift(award.Monday, "09:00", "17:00"))

	require.Len(t, r.Breakdown, 2)
	seg := r.Breakdown[0]
	assert.Equal(t, award.SegmentWorked, seg.Kind)
	assert.Equal(t, "09:00", seg.Start)
	assert.Equal(t, "17:00", seg.End)
	assert.Equal(t, award.Monday, seg.Day)
	assertDecimal(t, "8", seg.Hours)
	assertDecimal(t, "207.92", seg.Pay)
	assert.Equal(t, "Ordinary Rate (100%)", seg.Label)

	brk := r.Breakdown[1]
	assert.Equal(t, award.SegmentUnpaidBreak, brk.Kind)
	assert.Equal(t, award.UnpaidBreakLabel, brk.Label)
	assertDecimal(t, "0.5", brk.Hours)
	assertDecimal(t, "-13", brk.Pay)

	assertDecimal(t, "7.5", r.Hours)
	assertDecimal(t, "194.93", r.Pay, "207.92 - 12.995")
	assert.False(t, r.Overnight)
	assert.Equal(t, award.BreakAllowance{PaidMinutes: 20, UnpaidMinutes: 30}, r.Break)
}

func TestDecompose_CasualSaturdayMorning(t *testing.T) {
	// GIVEN: A casual working Saturday 09:00-13:00
	// WHEN: Decomposed
	// THEN: All four hours sit in the Saturday day band, no break deduction

	req := award.ShiftRequest{
		Day:            award.Saturday,
		Start:          "09:00",
		End:            "13:00",
		BaseRate:       rate("32.49"),
		EmploymentType: award.Casual,
		Classification: pharmacy.AssistantLevel1,
	}
	r := newDecomposer(t, currentSchedule(t)).Decompose(req)

	require.Len(t, r.Breakdown, 1)
	assert.Equal(t, "Saturday Day (150%)", r.Breakdown[0].Label)
	assertDecimal(t, "1.5", r.Breakdown[0].Multiplier)
	assertDecimal(t, "48.735", r.Breakdown[0].Rate)
	assertDecimal(t, "4", r.Hours)
	assertDecimal(t, "194.94", r.Pay)
	assert.Equal(t, 10, r.Break.PaidMinutes)
	assert.Zero(t, r.Break.UnpaidMinutes)
}

func TestDecompose_SplitsExactlyAtSeven(t *testing.T) {
	// GIVEN: A weekday shift from 06:59 to 07:01
	// WHEN: Decomposed
	// THEN: Two one-minute segments split at 07:00

	r := newDecomposer(t, currentSchedule(t)).Decompose(ftShift(award.Tuesday, "06:59", "07:01"))

	require.Len(t, r.Breakdown, 2)
	first, second := r.Breakdown[0], r.Breakdown[1]
	assert.Equal(t, "06:59", first.Start)
	assert.Equal(t, "07:00", first.End)
	assert.Equal(t, "Ordinary Rate (100%)", first.Label)
	assert.Equal(t, "07:00", second.Start)
	assert.Equal(t, "07:01", second.End)
	assert.Equal(t, "Early Morning (125%)", second.Label)
	assertDecimal(t, "0.43", first.Pay)
	assertDecimal(t, "0.54", second.Pay)
	assertDecimal(t, "0.97", r.Pay)
}

func TestDecompose_LegacySplitAtSeven(t *testing.T) {
	r := newDecomposer(t, legacySchedule(t)).Decompose(ftShift(award.Tuesday, "06:59", "07:01"))

	require.Len(t, r.Breakdown, 2)
	assert.Equal(t, "Early Morning Shift (125%)", r.Breakdown[0].Label)
	assert.Equal(t, "Ordinary Rate (100%)", r.Breakdown[1].Label)
}

func TestDecompose_AboveAwardUsesCustomRate(t *testing.T) {
	// GIVEN: An above-award employee with custom rate 50 and no table rate
	// WHEN: Decomposed
	// THEN: Every segment is priced at 50 per hour

	req := award.ShiftRequest{
		Day:            award.Monday,
		Start:          "09:00",
		End:            "13:00",
		BaseRate:       rate("0"),
		EmploymentType: award.FullTime,
		CustomRate:     "50",
		Classification: award.AboveAward,
	}
	r := newDecomposer(t, currentSchedule(t)).Decompose(req)

	for _, s := range r.Breakdown {
		assertDecimal(t, "50", s.BaseRate)
	}
	assertDecimal(t, "200", r.Pay)
}

// =============================================================================
// OVERNIGHT AND ROLLOVER
// =============================================================================

func TestDecompose_OvernightRollsToNextDay(t *testing.T) {
	// GIVEN: Friday 22:00 to 02:00
	// WHEN: Decomposed
	// THEN: The shift splits at midnight, after-midnight minutes are Saturday

	r := newDecomposer(t, currentSchedule(t)).Decompose(ftShift(award.Friday, "22:00", "02:00"))

	assert.True(t, r.Overnight)
	require.Len(t, r.Breakdown, 2)

	fri, sat := r.Breakdown[0], r.Breakdown[1]
	assert.Equal(t, award.Friday, fri.Day)
	assert.Equal(t, "22:00", fri.Start)
	assert.Equal(t, "00:00", fri.End)
	assertDecimal(t, "1.5", fri.Multiplier)
	assertDecimal(t, "77.97", fri.Pay)

	assert.Equal(t, award.Saturday, sat.Day)
	assert.Equal(t, "00:00", sat.Start)
	assert.Equal(t, "02:00", sat.End)
	assertDecimal(t, "1.25", sat.Multiplier)
	assertDecimal(t, "64.98", sat.Pay)

	assertDecimal(t, "4", r.Hours)
	assertDecimal(t, "142.95", r.Pay)
}

func TestDecompose_SundayRollsToMonday(t *testing.T) {
	r := newDecomposer(t, currentSchedule(t)).Decompose(ftShift(award.Sunday, "23:00", "01:00"))

	require.Len(t, r.Breakdown, 2)
	assert.Equal(t, award.Sunday, r.Breakdown[0].Day)
	assertDecimal(t, "2.25", r.Breakdown[0].Multiplier)
	assert.Equal(t, award.Monday, r.Breakdown[1].Day)
	assertDecimal(t, "1", r.Breakdown[1].Multiplier)
}

func TestDecompose_PublicHolidayNeverRollsOver(t *testing.T) {
	r := newDecomposer(t, currentSchedule(t)).Decompose(ftShift(award.PublicHoliday, "22:00", "02:00"))

	require.Len(t, r.Breakdown, 2)
	for _, s := range r.Breakdown {
		assert.Equal(t, award.PublicHoliday, s.Day)
		assertDecimal(t, "2.25", s.Multiplier)
	}
}

func TestDecompose_OvernightRollsOverExactlyOnce(t *testing.T) {
	// GIVEN: Overnight shifts starting on each weekday
	// WHEN: Decomposed
	// THEN: Days change once, at midnight, and never to the holiday label

	dc := newDecomposer(t, currentSchedule(t))
	for _, day := range award.WeekDays {
		r := dc.Decompose(ftShift(day, "18:30", "06:15"))
		require.True(t, r.Overnight)

		changes := 0
		worked := r.WorkedSegments()
		for i, s := range worked {
			assert.NotEqual(t, award.PublicHoliday, s.Day)
			if i > 0 && s.Day != worked[i-1].Day {
				changes++
				assert.Equal(t, "00:00", s.Start)
				assert.Equal(t, day.Next(), s.Day)
			}
		}
		assert.Equal(t, 1, changes, "day %s", day)
	}
}

func TestDecompose_EqualTimesAreTwentyFourHours(t *testing.T) {
	r := newDecomposer(t, currentSchedule(t)).Decompose(ftShift(award.Wednesday, "09:00", "09:00"))

	assert.True(t, r.Overnight)
	assertDecimal(t, "24", workedHours(r))
	assertDecimal(t, "23.5", r.Hours)
}

// =============================================================================
// SEGMENT INVARIANTS
// =============================================================================

func TestDecompose_SegmentHoursSumToDuration(t *testing.T) {
	// GIVEN: Every same-day shift on a half-hour grid
	// WHEN: Decomposed
	// THEN: Worked segment hours add up to end - start, and segments are
	//       contiguous

	dc := newDecomposer(t, currentSchedule(t))
	for start := 0; start < award.MinutesPerDay; start += 30 {
		for end := start + 30; end < award.MinutesPerDay; end += 30 {
			req := ftShift(award.Thursday, award.Clock(start).String(), award.Clock(end).String())
			r := dc.Decompose(req)

			want := decimal.NewFromInt(int64(end - start)).Div(decimal.NewFromInt(60))
			diff := workedHours(r).Sub(want).Abs()
			require.True(t, diff.LessThanOrEqual(dec("0.01")),
				"%s-%s: want %s, got %s", req.Start, req.End, want, workedHours(r))

			worked := r.WorkedSegments()
			assert.Equal(t, req.Start, worked[0].Start)
			assert.Equal(t, req.End, worked[len(worked)-1].End)
			for i := 1; i < len(worked); i++ {
				assert.Equal(t, worked[i-1].End, worked[i].Start)
			}
		}
	}
}

func TestDecompose_SegmentsAreRateHomogeneous(t *testing.T) {
	r := newDecomposer(t, currentSchedule(t)).Decompose(ftShift(award.Saturday, "06:00", "23:00"))

	labels := make([]string, 0, len(r.Breakdown))
	for _, s := range r.WorkedSegments() {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{
		"Saturday Day (125%)",
		"Saturday Early (150%)",
		"Saturday Day (125%)",
		"Saturday Evening (150%)",
		"Saturday Evening (150%)",
		"Saturday Late Night (175%)",
	}, labels)
}

// =============================================================================
// BREAKS
// =============================================================================

func TestDecompose_BreakTiers(t *testing.T) {
	tests := []struct {
		name   string
		end    string
		paid   int
		unpaid int
	}{
		{"under four hours", "12:59", 0, 0},
		{"exactly four hours", "13:00", 10, 0},
		{"exactly five hours", "14:00", 10, 0},
		{"just over five hours", "14:01", 10, 30},
		{"just under 7.6 hours", "16:35", 10, 30},
		{"exactly 7.6 hours", "16:36", 20, 30},
	}

	dc := newDecomposer(t, currentSchedule(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dc.Decompose(ftShift(award.Monday, "09:00", tt.end))
			assert.Equal(t, tt.paid, r.Break.PaidMinutes)
			assert.Equal(t, tt.unpaid, r.Break.UnpaidMinutes)

			last := r.Breakdown[len(r.Breakdown)-1]
			if tt.unpaid > 0 {
				assert.Equal(t, award.SegmentUnpaidBreak, last.Kind)
				assert.True(t, last.Pay.IsNegative())
			} else {
				assert.Equal(t, award.SegmentWorked, last.Kind)
			}
		})
	}
}

// =============================================================================
// SOFT FAILURE
// =============================================================================

func TestDecompose_InvalidInputsReturnZero(t *testing.T) {
	tests := []struct {
		name string
		req  award.ShiftRequest
	}{
		{"missing start", ftShift(award.Monday, "", "17:00")},
		{"missing end", ftShift(award.Monday, "09:00", "")},
		{"bad start", ftShift(award.Monday, "9am", "17:00")},
		{"out of range end", ftShift(award.Monday, "09:00", "25:00")},
		{"lower-case day", ftShift("saturday", "09:00", "13:00")},
		{"unknown day", ftShift("Funday", "09:00", "13:00")},
		{"empty day", ftShift("", "09:00", "13:00")},
		{"no base rate", func() award.ShiftRequest {
			r := ftShift(award.Monday, "09:00", "17:00")
			r.BaseRate = decimal.NullDecimal{}
			return r
		}()},
		{"negative base rate", func() award.ShiftRequest {
			r := ftShift(award.Monday, "09:00", "17:00")
			r.BaseRate = rate("-1")
			return r
		}()},
	}

	dc := newDecomposer(t, currentSchedule(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dc.Decompose(tt.req)
			assert.True(t, r.Hours.IsZero())
			assert.True(t, r.Pay.IsZero())
			assert.Empty(t, r.Breakdown)
		})
	}
}

func TestDecompose_UnknownDayIsLogged(t *testing.T) {
	// GIVEN: A shift on a day label that is not a weekday name or public holiday
	// WHEN: Decomposed
	// THEN: Nothing is priced and a warning names the label

	core, logs := observer.New(zap.WarnLevel)
	dc := award.NewDecomposer(currentSchedule(t), testAward(t).Breaks, zap.New(core))

	r := dc.Decompose(ftShift("Sat", "22:00", "02:00"))
	assert.True(t, r.Pay.IsZero())
	assert.False(t, r.Overnight)

	entries := logs.FilterMessage("skipping shift with unknown day").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Sat", entries[0].ContextMap()["day"])
}

func TestDecompose_BadCustomRateFallsBackToBase(t *testing.T) {
	req := ftShift(award.Monday, "09:00", "10:00")
	req.Classification = award.AboveAward
	req.CustomRate = "lots"

	r := newDecomposer(t, currentSchedule(t)).Decompose(req)
	assertDecimal(t, "25.99", r.Pay)
}
