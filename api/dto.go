/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the award engine's model from the external API contract, so the engine can
  keep Go-shaped types while clients see snake_case keys.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY AND HOURS:
  decimal.Decimal values are encoded as JSON strings ("207.92") and accepted
  as either strings or numbers. Clients must never do float math on them.

TYPES:
  Calculation:
    CalculateRequest, ShiftDTO, AllowancesDTO, CalculationResponse,
    DailyDTO, SegmentDTO, AllowanceLineDTO, CalculationListItemDTO

  Single shift:
    DecomposeRequest, DecomposeResponse, BreakDTO

  Reference data:
    PenaltyDTO, AwardDTO, ScheduleDTO, ClassificationDTO, AgeDTO

  Scenarios:
    ScenarioDTO

VALIDATION:
  Request types check their own day labels (validate). Everything else is
  checked in handlers.

SEE ALSO:
  - handlers.go: Uses these types
  - award/types.go: Engine types these map to
*/
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/history"
)

// =============================================================================
// CALCULATION REQUEST
// =============================================================================

// RateContextDTO identifies who is being paid.
type RateContextDTO struct {
	EmploymentType string `json:"employment_type"`
	Classification string `json:"classification"`
	Age            string `json:"age,omitempty"`
	CustomRate     string `json:"custom_rate,omitempty"`
}

// ShiftDTO is one rostered day. Empty start or end means not worked.
type ShiftDTO struct {
	Day           string `json:"day"`
	Start         string `json:"start"`
	End           string `json:"end"`
	PublicHoliday bool   `json:"public_holiday,omitempty"`
}

// AllowancesDTO is the weekly allowance claim.
type AllowancesDTO struct {
	HomeMedicineReview bool            `json:"home_medicine_review,omitempty"`
	Laundry            bool            `json:"laundry,omitempty"`
	BrokenHill         bool            `json:"broken_hill,omitempty"`
	MotorVehicleKm     decimal.Decimal `json:"motor_vehicle_km"`
	Meals              decimal.Decimal `json:"meals"`
	ExtraMeals         decimal.Decimal `json:"extra_meals"`
}

// CalculateRequest is the body of POST /api/calculate.
type CalculateRequest struct {
	RateContextDTO
	Shifts     []ShiftDTO    `json:"shifts"`
	Allowances AllowancesDTO `json:"allowances"`
	Schedule   string        `json:"schedule,omitempty"`
	// AsOf selects the award version in force on a date (YYYY-MM-DD).
	AsOf  string `json:"as_of,omitempty"`
	Save  bool   `json:"save,omitempty"`
	Label string `json:"label,omitempty"`
}

// validate rejects day labels the engine would not price.
func (req CalculateRequest) validate() error {
	var errs []error
	for i, s := range req.Shifts {
		if !award.Day(s.Day).Valid() {
			errs = append(errs, fmt.Errorf("shifts[%d]: unknown day %q", i, s.Day))
		}
	}
	return errors.Join(errs...)
}

// validate rejects a day label the engine would not price. The public
// holiday flag replaces the label, so any label is accepted with it.
func (req DecomposeRequest) validate() error {
	if !req.PublicHoliday && !award.Day(req.Day).Valid() {
		return fmt.Errorf("unknown day %q", req.Day)
	}
	return nil
}

// toInput converts the request to an engine input snapshot.
func (req CalculateRequest) toInput(schedule string) award.WeeklyInput {
	shifts := make([]award.ShiftInput, len(req.Shifts))
	for i, s := range req.Shifts {
		shifts[i] = award.ShiftInput{
			Day:           award.Day(s.Day),
			Start:         s.Start,
			End:           s.End,
			PublicHoliday: s.PublicHoliday,
		}
	}
	return award.WeeklyInput{
		Rate:   req.rateContext(),
		Shifts: shifts,
		Allowances: award.AllowanceSelection{
			HomeMedicineReview: req.Allowances.HomeMedicineReview,
			Laundry:            req.Allowances.Laundry,
			BrokenHill:         req.Allowances.BrokenHill,
			MotorVehicleKm:     req.Allowances.MotorVehicleKm,
			Meals:              req.Allowances.Meals,
			ExtraMeals:         req.Allowances.ExtraMeals,
		},
		Schedule: schedule,
	}
}

func (r RateContextDTO) rateContext() award.RateContext {
	age := award.Age(r.Age)
	if age == "" {
		age = award.AgeAdult
	}
	return award.RateContext{
		EmploymentType: award.EmploymentType(r.EmploymentType),
		Classification: award.Classification(r.Classification),
		Age:            age,
		CustomRate:     r.CustomRate,
	}
}

func toRateContextDTO(rc award.RateContext) RateContextDTO {
	return RateContextDTO{
		EmploymentType: string(rc.EmploymentType),
		Classification: string(rc.Classification),
		Age:            string(rc.Age),
		CustomRate:     rc.CustomRate,
	}
}

// =============================================================================
// CALCULATION RESPONSE
// =============================================================================

// SegmentDTO is one rate-homogeneous slice of a shift.
type SegmentDTO struct {
	Kind       string          `json:"kind"`
	Day        string          `json:"day"`
	Start      string          `json:"start,omitempty"`
	End        string          `json:"end,omitempty"`
	Label      string          `json:"label"`
	Hours      decimal.Decimal `json:"hours"`
	BaseRate   decimal.Decimal `json:"base_rate"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Rate       decimal.Decimal `json:"rate"`
	Pay        decimal.Decimal `json:"pay"`
}

// DailyDTO is a decomposed day of the week.
type DailyDTO struct {
	Day           string          `json:"day"`
	PublicHoliday bool            `json:"public_holiday,omitempty"`
	Start         string          `json:"start"`
	End           string          `json:"end"`
	Hours         decimal.Decimal `json:"hours"`
	Pay           decimal.Decimal `json:"pay"`
	Segments      []SegmentDTO    `json:"segments"`
}

// AllowanceLineDTO is one priced allowance.
type AllowanceLineDTO struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CalculationResponse is a weekly summary plus the context it was
// calculated in. ID is set when the calculation was saved.
type CalculationResponse struct {
	ID           string             `json:"id,omitempty"`
	CreatedAt    *time.Time         `json:"created_at,omitempty"`
	Label        string             `json:"label,omitempty"`
	AwardCode    string             `json:"award_code"`
	AwardVersion string             `json:"award_version"`
	Schedule     string             `json:"schedule"`
	Rate         RateContextDTO     `json:"rate"`
	BaseRate     decimal.Decimal    `json:"base_rate"`
	TotalHours   decimal.Decimal    `json:"total_hours"`
	TotalPay     decimal.Decimal    `json:"total_pay"`
	Overtime     OvertimeDTO        `json:"overtime"`
	Allowances   decimal.Decimal    `json:"allowances"`
	Total        decimal.Decimal    `json:"total"`
	Days         []DailyDTO         `json:"days"`
	AllowanceBy  []AllowanceLineDTO `json:"allowance_breakdown"`
}

// OvertimeDTO is the weekly overtime component.
type OvertimeDTO struct {
	Hours decimal.Decimal `json:"hours"`
	Pay   decimal.Decimal `json:"pay"`
}

// CalculationListItemDTO is a saved calculation without its breakdown.
type CalculationListItemDTO struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Label        string          `json:"label,omitempty"`
	AwardCode    string          `json:"award_code"`
	AwardVersion string          `json:"award_version"`
	Schedule     string          `json:"schedule"`
	Total        decimal.Decimal `json:"total"`
}

func toSegmentDTOs(segs []award.Segment) []SegmentDTO {
	out := make([]SegmentDTO, len(segs))
	for i, s := range segs {
		out[i] = SegmentDTO{
			Kind:       string(s.Kind),
			Day:        string(s.Day),
			Start:      s.Start,
			End:        s.End,
			Label:      s.Label,
			Hours:      s.Hours,
			BaseRate:   s.BaseRate,
			Multiplier: s.Multiplier,
			Rate:       s.Rate,
			Pay:        s.Pay,
		}
	}
	return out
}

func toCalculationResponse(rc award.RateContext, schedule string, s award.WeeklySummary) CalculationResponse {
	days := make([]DailyDTO, len(s.DailyBreakdown))
	for i, d := range s.DailyBreakdown {
		days[i] = DailyDTO{
			Day:           string(d.Day),
			PublicHoliday: d.PublicHoliday,
			Start:         d.Start,
			End:           d.End,
			Hours:         d.Hours,
			Pay:           d.Pay,
			Segments:      toSegmentDTOs(d.Segments),
		}
	}
	lines := make([]AllowanceLineDTO, len(s.AllowanceBreakdown))
	for i, l := range s.AllowanceBreakdown {
		lines[i] = AllowanceLineDTO{Name: l.Name, Amount: l.Amount}
	}
	return CalculationResponse{
		AwardCode:    s.AwardCode,
		AwardVersion: s.AwardVersion,
		Schedule:     schedule,
		Rate:         toRateContextDTO(rc),
		BaseRate:     s.BaseRate,
		TotalHours:   s.TotalHours,
		TotalPay:     s.TotalPay,
		Overtime:     OvertimeDTO{Hours: s.OvertimeHours, Pay: s.OvertimePay},
		Allowances:   s.Allowances,
		Total:        s.Total,
		Days:         days,
		AllowanceBy:  lines,
	}
}

func toRecordResponse(r history.Record) CalculationResponse {
	resp := toCalculationResponse(r.Input.Rate, r.Schedule, r.Summary)
	created := r.CreatedAt
	resp.ID = r.ID
	resp.CreatedAt = &created
	resp.Label = r.Label
	return resp
}

func toListItem(r history.Record) CalculationListItemDTO {
	return CalculationListItemDTO{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Label:        r.Label,
		AwardCode:    r.AwardCode,
		AwardVersion: r.AwardVersion,
		Schedule:     r.Schedule,
		Total:        r.Summary.Total,
	}
}

// =============================================================================
// SINGLE SHIFT
// =============================================================================

// DecomposeRequest is the body of POST /api/shifts/decompose. BaseRate
// overrides the resolved rate when set.
type DecomposeRequest struct {
	RateContextDTO
	ShiftDTO
	BaseRate decimal.NullDecimal `json:"base_rate"`
	Schedule string              `json:"schedule,omitempty"`
	AsOf     string              `json:"as_of,omitempty"`
}

// BreakDTO is a shift's break entitlement.
type BreakDTO struct {
	PaidMinutes   int `json:"paid_minutes"`
	UnpaidMinutes int `json:"unpaid_minutes"`
}

// DecomposeResponse is a priced shift.
type DecomposeResponse struct {
	AwardVersion string          `json:"award_version"`
	Schedule     string          `json:"schedule"`
	Day          string          `json:"day"`
	Hours        decimal.Decimal `json:"hours"`
	Pay          decimal.Decimal `json:"pay"`
	Overnight    bool            `json:"overnight"`
	Break        BreakDTO        `json:"break"`
	Segments     []SegmentDTO    `json:"segments"`
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// PenaltyDTO is the multiplier in force at one minute.
type PenaltyDTO struct {
	Schedule       string          `json:"schedule"`
	Day            string          `json:"day"`
	Time           string          `json:"time"`
	EmploymentType string          `json:"employment_type"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	Label          string          `json:"label"`
}

// ScheduleDTO names a penalty schedule.
type ScheduleDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Default     bool     `json:"default,omitempty"`
	Boundaries  []string `json:"boundaries"`
}

// BreakTierDTO is one row of the break table.
type BreakTierDTO struct {
	MinHours      decimal.Decimal `json:"min_hours"`
	Exclusive     bool            `json:"exclusive,omitempty"`
	PaidMinutes   int             `json:"paid_minutes"`
	UnpaidMinutes int             `json:"unpaid_minutes"`
}

// AwardDTO describes the award version in force.
type AwardDTO struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Version       string          `json:"version"`
	EffectiveFrom string          `json:"effective_from"`
	Versions      []string        `json:"versions"`
	CasualLoading decimal.Decimal `json:"casual_loading"`
	Schedules     []ScheduleDTO   `json:"schedules"`
	Overtime      struct {
		OrdinaryHours       decimal.Decimal `json:"ordinary_hours"`
		FirstTierHours      decimal.Decimal `json:"first_tier_hours"`
		FirstTierMultiplier decimal.Decimal `json:"first_tier_multiplier"`
		AfterMultiplier     decimal.Decimal `json:"after_multiplier"`
	} `json:"overtime"`
	Breaks     []BreakTierDTO             `json:"breaks"`
	Allowances map[string]decimal.Decimal `json:"allowances"`
}

// ClassificationDTO is a classification with its rates.
type ClassificationDTO struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	PharmacistTier bool                `json:"pharmacist_tier,omitempty"`
	JuniorEligible bool                `json:"junior_eligible,omitempty"`
	FullTimeRate   decimal.NullDecimal `json:"full_time_rate"`
	CasualRate     decimal.NullDecimal `json:"casual_rate"`
}

// AgeDTO is an age bracket. Percentage is null for adults.
type AgeDTO struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Percentage decimal.NullDecimal `json:"percentage"`
}

// =============================================================================
// SCENARIOS AND ERRORS
// =============================================================================

// ScenarioDTO describes a demo week.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// HealthDTO is the /health response.
type HealthDTO struct {
	Status       string `json:"status"`
	AwardCode    string `json:"award_code"`
	AwardVersion string `json:"award_version"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
