/*
scenarios_test.go - Tests for demo weeks

PURPOSE:
	Pins the total of every demo week so a rate table or engine change that
	moves them is noticed. The scenarios double as end-to-end tests of the
	calculate endpoint.
*/
package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/award-engine/pharmacy"
)

func TestListScenarios(t *testing.T) {
	s := setupTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[[]ScenarioDTO](t, rec)
	require.Len(t, list, len(scenarios))
	seen := map[string]bool{}
	for _, sc := range list {
		assert.NotEmpty(t, sc.Name, sc.ID)
		assert.False(t, seen[sc.ID], "duplicate scenario %s", sc.ID)
		seen[sc.ID] = true
	}
}

func TestCalculateScenario_Totals(t *testing.T) {
	tests := []struct {
		id       string
		hours    string
		overtime string
		total    string
	}{
		// 5 × 194.93
		{"standard-week", "37.5", "0", "974.65"},
		// 987.62 ordinary + 2h at 1.5 × 25.99
		{"overtime-week", "40", "2", "1065.59"},
		// 4 × 32.49 × 1.5 + 4 × 32.49 × 2.25
		{"casual-weekend", "8", "0", "487.35"},
		// 3 × (3h + 2h × 1.25) × 0.6 × 25.99
		{"junior-evenings", "15", "0", "257.31"},
		// 9 × 35.20 + 231.07 allowances
		{"pharmacist-allowances", "9", "0", "547.87"},
		// (8 × 2.25 - 0.5) × 35.20 + 7.5 × 35.20
		{"public-holiday", "15", "0", "880"},
	}

	s := setupTestServer(t)
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/scenarios/"+tt.id+"/calculate", nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			resp := decode[CalculationResponse](t, rec)
			assert.Equal(t, tt.hours, resp.TotalHours.String())
			assert.Equal(t, tt.overtime, resp.Overtime.Hours.String())
			assert.Equal(t, tt.total, resp.Total.String())
		})
	}
}

func TestCalculateScenario_UsesOwnSchedule(t *testing.T) {
	s := setupTestServer(t)
	resp := decode[CalculationResponse](t, s.do(t, http.MethodPost, "/api/scenarios/legacy-night-shift/calculate", nil))

	assert.Equal(t, pharmacy.ScheduleLegacy, resp.Schedule)
	require.Len(t, resp.Days, 1)
	assert.True(t, resp.Total.IsPositive())
}

func TestCalculateScenario_QueryOverridesSchedule(t *testing.T) {
	// GIVEN: The standard week
	// WHEN: Calculated with ?schedule=legacy
	// THEN: The legacy schedule is reported

	s := setupTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/scenarios/standard-week/calculate?schedule=legacy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pharmacy.ScheduleLegacy, decode[CalculationResponse](t, rec).Schedule)
}

func TestCalculateScenario_Save(t *testing.T) {
	s := setupTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/scenarios/overtime-week/calculate?save=true", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[CalculationResponse](t, rec)
	assert.Equal(t, "Overtime Week", resp.Label)

	list := decode[[]CalculationListItemDTO](t, s.do(t, http.MethodGet, "/api/calculations", nil))
	require.Len(t, list, 1)
	assert.Equal(t, resp.ID, list[0].ID)
}

func TestCalculateScenario_Errors(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/scenarios/no-such-week/calculate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/scenarios/standard-week/calculate?save=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/scenarios/standard-week/calculate?as_of=1999-01-01", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScenarios_DoNotShareState(t *testing.T) {
	// GIVEN: A scenario calculated with a schedule override
	// WHEN: Calculated again without one
	// THEN: The override did not stick to the scenario definition

	s := setupTestServer(t)
	s.do(t, http.MethodPost, "/api/scenarios/standard-week/calculate?schedule=legacy", nil)

	resp := decode[CalculationResponse](t, s.do(t, http.MethodPost, "/api/scenarios/standard-week/calculate", nil))
	assert.Equal(t, pharmacy.ScheduleCurrent, resp.Schedule)
}
