/*
scenarios.go - Demo weeks for testing and demonstrations

PURPOSE:

	Provides pre-built rosters that exercise specific parts of the engine.
	Each scenario is a complete CalculateRequest, so calculating one goes
	through exactly the same path as a client-submitted week.

AVAILABLE SCENARIOS:

	standard-week:         Full-time assistant, five ordinary days
	overtime-week:         Full-time assistant, 40 hours (2 hours overtime)
	casual-weekend:        Casual assistant, Saturday and Sunday
	junior-evenings:       17-year-old part-timer on evening shifts
	pharmacist-allowances: Part-time pharmacist claiming every allowance
	public-holiday:        Full-time pharmacist working a public holiday
	legacy-night-shift:    Casual technician overnight, legacy schedule

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/overtime-week/calculate?schedule=legacy&save=true

ADDING NEW SCENARIOS:
 1. Add an entry to 'scenarios' with ID, name, description and request
 2. Add a test in scenarios_test.go pinning its total

SEE ALSO:
  - handlers.go: calculate, shared with POST /api/calculate
*/
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/pharmacy"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ScenarioDTO
	Request CalculateRequest
}

func weekdays(start, end string) []ShiftDTO {
	out := make([]ShiftDTO, 0, 5)
	for _, d := range award.WeekDays[:5] {
		out = append(out, ShiftDTO{Day: string(d), Start: start, End: end})
	}
	return out
}

func rateContext(et award.EmploymentType, c award.Classification, age award.Age) RateContextDTO {
	return RateContextDTO{EmploymentType: string(et), Classification: string(c), Age: string(age)}
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "standard-week",
			Name:        "Standard Week",
			Description: "Full-time Pharmacy Assistant Level 1, Monday to Friday 09:00-17:00",
			Category:    "ordinary",
		},
		Request: CalculateRequest{
			RateContextDTO: rateContext(award.FullTime, pharmacy.AssistantLevel1, award.AgeAdult),
			Shifts:         weekdays("09:00", "17:00"),
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "overtime-week",
			Name:        "Overtime Week",
			Description: "Full-time assistant working 40 net hours; 2 hours of overtime",
			Category:    "overtime",
		},
		Request: CalculateRequest{
			RateContextDTO: rateContext(award.FullTime, pharmacy.AssistantLevel1, award.AgeAdult),
			Shifts:         weekdays("08:00", "16:30"),
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "casual-weekend",
			Name:        "Casual Weekend",
			Description: "Casual assistant on Saturday and Sunday mornings",
			Category:    "penalties",
		},
		Request: CalculateRequest{
			RateContextDTO: rateContext(award.Casual, pharmacy.AssistantLevel1, award.AgeAdult),
			Shifts: []ShiftDTO{
				{Day: string(award.Saturday), Start: "09:00", End: "13:00"},
				{Day: string(award.Sunday), Start: "10:00", End: "14:00"},
			},
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "junior-evenings",
			Name:        "Junior Evenings",
			Description: "17-year-old part-time assistant on after-school evening shifts",
			Category:    "junior",
		},
		Request: CalculateRequest{
			RateContextDTO: rateContext(award.PartTime, pharmacy.AssistantLevel1, pharmacy.Age17),
			Shifts: []ShiftDTO{
				{Day: string(award.Monday), Start: "16:00", End: "21:00"},
				{Day: string(award.Wednesday), Start: "16:00", End: "21:00"},
				{Day: string(award.Thursday), Start: "16:00", End: "21:00"},
			},
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "pharmacist-allowances",
			Name:        "Pharmacist Allowances",
			Description: "Part-time pharmacist, three mornings, claiming every allowance",
			Category:    "allowances",
		},
		Request: CalculateRequest{
			RateContextDTO: rateContext(award.PartTime, pharmacy.Pharmacist, award.AgeAdult),
			Shifts: []ShiftDTO{
				{Day: string(award.Monday), Start: "09:00", End: "12:00"},
				{Day: string(award.Tuesday), Start: "09:00", End: "12:00"},
				{Day: string(award.Wednesday), Start: "09:00", End: "12:00"},
			},
			Allowances: AllowancesDTO{
				HomeMedicineReview: true,
				Laundry:            true,
				BrokenHill:         true,
				MotorVehicleKm:     decimal.NewFromInt(100),
				Meals:              decimal.NewFromInt(2),
				ExtraMeals:         decimal.NewFromInt(1),
			},
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "public-holiday",
			Name:        "Public Holiday",
			Description: "Full-time pharmacist working Monday as a public holiday",
			Category:    "penalties",
		},
		Request: CalculateRequest{
			RateContextDTO: rateContext(award.FullTime, pharmacy.Pharmacist, award.AgeAdult),
			Shifts: []ShiftDTO{
				{Day: string(award.Monday), Start: "09:00", End: "17:00", PublicHoliday: true},
				{Day: string(award.Tuesday), Start: "09:00", End: "17:00"},
			},
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "legacy-night-shift",
			Name:        "Legacy Night Shift",
			Description: "Casual technician overnight Friday into Saturday under the legacy schedule",
			Category:    "schedules",
		},
		Request: CalculateRequest{
			RateContextDTO: rateContext(award.Casual, pharmacy.TechnicianLevel1, award.AgeAdult),
			Shifts: []ShiftDTO{
				{Day: string(award.Friday), Start: "22:00", End: "02:00"},
			},
			Schedule: pharmacy.ScheduleLegacy,
		},
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CalculateScenario calculates a demo week. The schedule, as_of and save
// query parameters override the scenario's own.
// POST /api/scenarios/{id}/calculate
func (h *Handler) CalculateScenario(w http.ResponseWriter, r *http.Request) {
	s, ok := findScenario(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return
	}

	req := s.Request
	req.Label = s.Name
	q := r.URL.Query()
	if v := q.Get("schedule"); v != "" {
		req.Schedule = v
	}
	if v := q.Get("as_of"); v != "" {
		req.AsOf = v
	}
	if v := q.Get("save"); v != "" {
		save, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid save parameter", err)
			return
		}
		req.Save = save
	}

	h.calculate(w, r, req)
}
