package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/export"
	"github.com/warp/award-engine/pharmacy"
)

const mondayWeek = `
label: Week 1
employment_type: full-time
classification: pharmacy-assistant-1
shifts:
  - {day: Monday, start: "09:00", end: "17:00"}
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeWeek(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// =============================================================================
// WEEK FILE
// =============================================================================

func TestReadWeekFile(t *testing.T) {
	// GIVEN: A roster with allowances and a public holiday
	// WHEN: Read and converted
	// THEN: Every field reaches the engine input

	path := writeWeek(t, `
employment_type: casual
classification: pharmacy-assistant-1
age: "17"
schedule: legacy
shifts:
  - {day: Saturday, start: "09:00", end: "13:00"}
  - {day: Monday, start: "22:00", end: "02:00", public_holiday: true}
allowances:
  laundry: true
  motor_vehicle_km: 42.5
`)
	w, err := readWeekFile(path, nil)
	require.NoError(t, err)

	in := w.Input()
	assert.Equal(t, award.Casual, in.Rate.EmploymentType)
	assert.Equal(t, pharmacy.Age17, in.Rate.Age)
	assert.Equal(t, pharmacy.ScheduleLegacy, in.Schedule)
	require.Len(t, in.Shifts, 2)
	assert.Equal(t, award.PublicHoliday, in.Shifts[1].RateDay())
	assert.True(t, in.Allowances.Laundry)
	assert.Equal(t, "42.5", in.Allowances.MotorVehicleKm.String())
}

func TestReadWeekFile_Defaults(t *testing.T) {
	w, err := readWeekFile("-", strings.NewReader(`
classification: pharmacist
shifts: [{day: Monday, start: "09:00", end: "12:00"}]
`))
	require.NoError(t, err)

	in := w.Input()
	assert.Equal(t, award.FullTime, in.Rate.EmploymentType)
	assert.Equal(t, award.AgeAdult, in.Rate.Age)
}

func TestReadWeekFile_Errors(t *testing.T) {
	_, err := readWeekFile(writeWeek(t, "classification: pharmacist\n"), nil)
	assert.ErrorContains(t, err, "no shifts")

	_, err = readWeekFile(writeWeek(t, "shifts: {"), nil)
	assert.Error(t, err)

	_, err = readWeekFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = readWeekFile(writeWeek(t, `shifts: [{day: Monday, start: "09:00", end: "13:00"}, {day: saturday, start: "09:00", end: "13:00"}]`), nil)
	assert.ErrorContains(t, err, `shift 2: unknown day "saturday"`)
}

// =============================================================================
// COMMANDS
// =============================================================================

func TestCalculateCmd_Text(t *testing.T) {
	out, _, err := execute(t, "", "calculate", "-f", writeWeek(t, mondayWeek))
	require.NoError(t, err)

	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "194.93")
	assert.Contains(t, out, "Ordinary Rate (100%)")
}

func TestCalculateCmd_StdinCSV(t *testing.T) {
	out, _, err := execute(t, mondayWeek, "calculate", "-f", "-", "--format", "csv")
	require.NoError(t, err)

	rows, err := export.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ordinary Rate (100%)", rows[0].Label)
}

func TestCalculateCmd_ScheduleFlag(t *testing.T) {
	week := `
employment_type: casual
classification: pharmacy-assistant-1
shifts: [{day: Monday, start: "09:00", end: "13:00"}]
`
	out, _, err := execute(t, week, "calculate", "-f", "-", "--schedule", "legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "162.45")

	_, _, err = execute(t, week, "calculate", "-f", "-", "--schedule", "nope")
	assert.ErrorContains(t, err, `no schedule "nope"`)
}

func TestCalculateCmd_XLSXFile(t *testing.T) {
	// GIVEN: --format xlsx with an output file
	// WHEN: Run
	// THEN: A zip workbook is written and the total is reported on stderr

	outPath := filepath.Join(t.TempDir(), "week.xlsx")
	_, stderr, err := execute(t, "", "calculate", "-f", writeWeek(t, mondayWeek), "--format", "xlsx", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "total 194.93")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestCalculateCmd_Errors(t *testing.T) {
	_, _, err := execute(t, "", "calculate")
	assert.Error(t, err, "--file is required")

	_, _, err = execute(t, mondayWeek, "calculate", "-f", "-", "--format", "xlsx")
	assert.ErrorContains(t, err, "--output")

	_, _, err = execute(t, mondayWeek, "calculate", "-f", "-", "--format", "pdf")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, _, err = execute(t, mondayWeek, "calculate", "-f", "-", "--as-of", "2001-01-01")
	assert.ErrorIs(t, err, award.ErrNoVersionInForce)
}

func TestCalculateCmd_AsOfFlagBeatsRosterDate(t *testing.T) {
	// GIVEN: A roster dated before any award version
	// WHEN: Calculated with and without an explicit --as-of
	// THEN: The flag picks the version and the file date alone fails

	week := mondayWeek + "as_of: \"2001-01-01\"\n"

	_, _, err := execute(t, week, "calculate", "-f", "-")
	assert.ErrorIs(t, err, award.ErrNoVersionInForce)

	out, _, err := execute(t, week, "calculate", "-f", "-", "--as-of", "2025-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "194.93")
}

func TestPenaltyCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"penalty", "Saturday", "09:00", "--casual"}, "×1.5 Saturday Day (150%)"},
		{[]string{"penalty", "Monday", "19:00"}, "×1.25 Evening (125%)"},
		{[]string{"penalty", "Tuesday", "10:00", "--casual", "--schedule", "legacy"}, "Casual Loading (125%)"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	_, _, err := execute(t, "", "penalty", "Funday", "09:00")
	assert.ErrorContains(t, err, "unknown day")
	_, _, err = execute(t, "", "penalty", "Monday", "9am")
	assert.ErrorIs(t, err, award.ErrInvalidClock)
	_, _, err = execute(t, "", "penalty", "Monday")
	assert.Error(t, err)
}

func TestAwardCmd(t *testing.T) {
	out, _, err := execute(t, "", "award")
	require.NoError(t, err)

	assert.Contains(t, out, pharmacy.AwardCode)
	assert.Contains(t, out, "current (default)")
	assert.Contains(t, out, "legacy")
	assert.Contains(t, out, "pharmacy-assistant-1")
	assert.Contains(t, out, "25.99")
	assert.Contains(t, out, "32.49")
}
