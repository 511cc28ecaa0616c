package award_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/pharmacy"
)

var allDays = append(append([]award.Day{}, award.WeekDays...), award.PublicHoliday)

// currentMultiplier is an independent statement of the current MA000012
// band table, used to sweep the resolver.
func currentMultiplier(day award.Day, minute int, casual bool) string {
	pick := func(nonCasual, cas string) string {
		if casual {
			return cas
		}
		return nonCasual
	}
	switch {
	case day == award.PublicHoliday:
		return pick("2.25", "2.5")
	case day == award.Saturday:
		switch {
		case minute >= 7*60 && minute < 8*60:
			return pick("1.5", "1.75")
		case minute >= 18*60 && minute < 21*60:
			return pick("1.5", "1.75")
		case minute >= 21*60:
			return pick("1.75", "2")
		default:
			return pick("1.25", "1.5")
		}
	case day == award.Sunday:
		if minute >= 7*60 && minute < 21*60 {
			return pick("2", "2.25")
		}
		return pick("2.25", "2.5")
	default:
		switch {
		case minute >= 7*60 && minute < 8*60:
			return pick("1.25", "1.5")
		case minute >= 19*60 && minute < 21*60:
			return pick("1.25", "1.5")
		case minute >= 21*60:
			return pick("1.5", "1.75")
		default:
			return "1"
		}
	}
}

func legacyMultiplier(day award.Day, minute int, casual bool, c award.Classification) string {
	switch day {
	case award.Saturday:
		return "1.5"
	case award.Sunday, award.PublicHoliday:
		return "2"
	}
	if casual && !c.IsAboveAward() {
		return "1.25"
	}
	if minute < 7*60 || minute >= 19*60 {
		return "1.25"
	}
	return "1"
}

// =============================================================================
// EXHAUSTIVE SWEEPS
// =============================================================================

func TestResolve_CurrentSchedule_EveryMinute(t *testing.T) {
	// GIVEN: The current schedule
	// WHEN: Resolving every minute of every day for both employment kinds
	// THEN: Each multiplier matches the band table

	s := currentSchedule(t)
	for _, day := range allDays {
		for _, et := range []award.EmploymentType{award.FullTime, award.PartTime, award.Casual} {
			for m := 0; m < award.MinutesPerDay; m++ {
				p := s.Resolve(day, award.Clock(m), et, pharmacy.AssistantLevel1)
				want := currentMultiplier(day, m, et.IsCasual())
				if !p.Multiplier.Equal(dec(want)) {
					t.Fatalf("%s %s %s: want %s, got %s (%s)",
						day, award.Clock(m), et, want, p.Multiplier, p.Label)
				}
				require.NotEmpty(t, p.Label)
			}
		}
	}
}

func TestResolve_LegacySchedule_EveryMinute(t *testing.T) {
	// GIVEN: The legacy schedule
	// WHEN: Resolving every minute for award and above-award employees
	// THEN: Each multiplier matches the uniform table

	s := legacySchedule(t)
	for _, day := range allDays {
		for _, c := range []award.Classification{pharmacy.Pharmacist, award.AboveAward} {
			for _, et := range []award.EmploymentType{award.FullTime, award.Casual} {
				for m := 0; m < award.MinutesPerDay; m++ {
					p := s.Resolve(day, award.Clock(m), et, c)
					want := legacyMultiplier(day, m, et.IsCasual(), c)
					if !p.Multiplier.Equal(dec(want)) {
						t.Fatalf("%s %s %s %s: want %s, got %s (%s)",
							day, award.Clock(m), et, c, want, p.Multiplier, p.Label)
					}
				}
			}
		}
	}
}

// =============================================================================
// BOUNDARY TIE-BREAKS
// =============================================================================

func TestResolve_BoundariesBelongToLaterBand(t *testing.T) {
	s := currentSchedule(t)

	tests := []struct {
		day   award.Day
		at    string
		et    award.EmploymentType
		want  string
		label string
	}{
		{award.Monday, "06:59", award.FullTime, "1", "Ordinary Rate (100%)"},
		{award.Monday, "07:00", award.FullTime, "1.25", "Early Morning (125%)"},
		{award.Monday, "08:00", award.FullTime, "1", "Ordinary Rate (100%)"},
		{award.Monday, "18:59", award.FullTime, "1", "Ordinary Rate (100%)"},
		{award.Monday, "19:00", award.FullTime, "1.25", "Evening (125%)"},
		{award.Monday, "21:00", award.Casual, "1.75", "Late Night (175%)"},
		{award.Saturday, "07:59", award.Casual, "1.75", "Saturday Early (175%)"},
		{award.Saturday, "08:00", award.Casual, "1.5", "Saturday Day (150%)"},
		{award.Saturday, "18:00", award.FullTime, "1.5", "Saturday Evening (150%)"},
		{award.Sunday, "20:59", award.FullTime, "2", "Sunday Day (200%)"},
		{award.Sunday, "21:00", award.FullTime, "2.25", "Sunday Night (225%)"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s %s", tt.day, tt.at, tt.et), func(t *testing.T) {
			p, err := s.ResolveAt(tt.day, tt.at, tt.et, pharmacy.AssistantLevel1)
			require.NoError(t, err)
			assertDecimal(t, tt.want, p.Multiplier)
			assert.Equal(t, tt.label, p.Label)
		})
	}
}

func TestResolve_SaturdayBeforeSevenUsesDayRate(t *testing.T) {
	// GIVEN: A Saturday minute before any band starts
	// WHEN: Resolved
	// THEN: The Saturday day rate applies

	p, err := currentSchedule(t).ResolveAt(award.Saturday, "05:30", award.FullTime, pharmacy.Pharmacist)
	require.NoError(t, err)
	assertDecimal(t, "1.25", p.Multiplier)
	assert.Equal(t, "Saturday Day (125%)", p.Label)
}

func TestResolve_SundayCasualDayCarriesLoading(t *testing.T) {
	p, err := currentSchedule(t).ResolveAt(award.Sunday, "10:00", award.Casual, pharmacy.Pharmacist)
	require.NoError(t, err)
	assertDecimal(t, "2.25", p.Multiplier, "1.8 × 1.25 casual loading")
	assert.Contains(t, p.Label, "casual loading")
}

// =============================================================================
// ABOVE AWARD
// =============================================================================

func TestResolve_AboveAwardStillGetsPenalties(t *testing.T) {
	// GIVEN: An above-award employee on a weekday evening
	// WHEN: Resolved
	// THEN: The evening penalty still applies

	p, err := currentSchedule(t).ResolveAt(award.Wednesday, "20:00", award.FullTime, award.AboveAward)
	require.NoError(t, err)
	assertDecimal(t, "1.25", p.Multiplier)
}

func TestResolve_LegacyCasualLoadingExemptsAboveAward(t *testing.T) {
	s := legacySchedule(t)

	p, err := s.ResolveAt(award.Tuesday, "10:00", award.Casual, pharmacy.AssistantLevel1)
	require.NoError(t, err)
	assert.Equal(t, "Casual Loading (125%)", p.Label)

	p, err = s.ResolveAt(award.Tuesday, "10:00", award.Casual, award.AboveAward)
	require.NoError(t, err)
	assertDecimal(t, "1", p.Multiplier)
	assert.Equal(t, "Ordinary Rate (100%)", p.Label)
}

// =============================================================================
// INPUT HANDLING
// =============================================================================

func TestResolveAt_RejectsMalformedTime(t *testing.T) {
	for _, in := range []string{"", "7", "25:00", "24:00", "07:60", "7:5", "ab:cd"} {
		_, err := currentSchedule(t).ResolveAt(award.Monday, in, award.FullTime, pharmacy.Pharmacist)
		assert.ErrorIs(t, err, award.ErrInvalidClock, "input %q", in)
	}
}

func TestResolve_IsPure(t *testing.T) {
	s := currentSchedule(t)
	first := s.Resolve(award.Friday, award.MustClock("19:30"), award.Casual, pharmacy.Pharmacist)
	second := s.Resolve(award.Friday, award.MustClock("19:30"), award.Casual, pharmacy.Pharmacist)
	assert.Equal(t, first, second)
}

func TestSchedule_Boundaries(t *testing.T) {
	got := currentSchedule(t).Boundaries()
	want := []award.Clock{0, 420, 480, 1080, 1140, 1260, 1440}
	assert.Equal(t, want, got)

	got = legacySchedule(t).Boundaries()
	assert.Equal(t, []award.Clock{0, 420, 1140, 1440}, got)
}
