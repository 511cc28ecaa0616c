package award

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CLOCK - Minutes since midnight
// =============================================================================

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 24 * 60

// Clock is a time of day in minutes since midnight. Band edges may use
// MinutesPerDay ("24:00") to mean end of day.
type Clock int

// ParseClock parses a 24-hour "HH:MM" string into a time of day.
func ParseClock(s string) (Clock, error) {
	c, err := parseHHMM(s)
	if err != nil {
		return 0, err
	}
	if c >= MinutesPerDay {
		return 0, &ClockError{Value: s, Reason: "hour out of range"}
	}
	return c, nil
}

// ParseBoundary is like ParseClock but also accepts "24:00".
func ParseBoundary(s string) (Clock, error) {
	c, err := parseHHMM(s)
	if err != nil {
		return 0, err
	}
	if c > MinutesPerDay {
		return 0, &ClockError{Value: s, Reason: "hour out of range"}
	}
	return c, nil
}

func parseHHMM(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, &ClockError{Value: s, Reason: "expected HH:MM"}
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, &ClockError{Value: s, Reason: "invalid hour"}
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, &ClockError{Value: s, Reason: "invalid minute"}
	}
	if h == 24 && m != 0 {
		return 0, &ClockError{Value: s, Reason: "hour out of range"}
	}
	return Clock(h*60 + m), nil
}

// MustClock parses s and panics on failure. Use for literals.
func MustClock(s string) Clock {
	c, err := ParseBoundary(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the clock as "HH:MM", wrapping past midnight.
func (c Clock) String() string {
	m := int(c) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// BoundaryString formats a band edge, keeping "24:00" intact.
func (c Clock) BoundaryString() string {
	if c == MinutesPerDay {
		return "24:00"
	}
	return c.String()
}
