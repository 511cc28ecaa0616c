package award_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/pharmacy"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	msg := fmt.Sprintf("want %s, got %s", want, got.String())
	if len(msgAndArgs) > 0 {
		msg += " (" + fmt.Sprint(msgAndArgs...) + ")"
	}
	assert.True(t, got.Equal(dec(want)), msg)
}

func testAward(t *testing.T) *award.Award {
	t.Helper()
	return pharmacy.MustAward()
}

func currentSchedule(t *testing.T) award.Schedule {
	t.Helper()
	s, ok := testAward(t).Schedule(pharmacy.ScheduleCurrent)
	if !ok {
		t.Fatal("current schedule missing")
	}
	return s
}

func legacySchedule(t *testing.T) award.Schedule {
	t.Helper()
	s, ok := testAward(t).Schedule(pharmacy.ScheduleLegacy)
	if !ok {
		t.Fatal("legacy schedule missing")
	}
	return s
}

func newDecomposer(t *testing.T, schedule award.Schedule) *award.Decomposer {
	t.Helper()
	return award.NewDecomposer(schedule, testAward(t).Breaks, nil)
}

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}
