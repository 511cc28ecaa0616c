/*
handlers.go - HTTP API handlers for the award pay engine

PURPOSE:
  Exposes the award engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the award package.

ENDPOINTS:
  Calculation:
    POST   /api/calculate                     Weekly pay for a roster
    POST   /api/shifts/decompose              Price a single shift
    GET    /api/penalty                       Multiplier at one minute

  Reference data:
    GET    /api/award                         Award version in force
    GET    /api/classifications               Classifications and rates
    GET    /api/ages                          Junior age brackets

  History:
    GET    /api/calculations                  Saved calculations
    GET    /api/calculations/{id}             One saved calculation
    DELETE /api/calculations/{id}             Remove a saved calculation
    GET    /api/calculations/{id}/export.{f}  Download as csv, xlsx or txt

  Scenarios:
    GET    /api/scenarios                     List demo weeks
    POST   /api/scenarios/{id}/calculate      Calculate a demo week

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Catalog: Award versions by effective date
  - Store: Calculation history
  - Metrics/Logger: Observability (both optional)

  The award engine never fails a calculation; bad shifts price at zero.
  Handlers only reject what cannot be interpreted at all: malformed JSON,
  unknown day labels, an unparseable as_of date, an award with no version
  in force.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, bad query parameter, bad date
  - 404: Unknown award, calculation or scenario
  - 500: Storage and export failures

SECURITY NOTE:
  No authentication. The engine is an estimator and stores no personal data
  beyond the optional label.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo weeks
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/export"
	"github.com/warp/award-engine/history"
	"github.com/warp/award-engine/observability"
	"github.com/warp/award-engine/pharmacy"
)

// dateLayout is the format of as_of parameters.
const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog *award.Catalog
	Store   history.Store
	Metrics *observability.Metrics
	Logger  *zap.Logger

	// AwardCode is the award used when a request names none.
	AwardCode string
	// DefaultSchedule overrides the award's default schedule when set.
	DefaultSchedule string

	now func() time.Time
}

// NewHandler creates a new handler. A nil logger discards diagnostics and a
// nil metrics disables instrumentation.
func NewHandler(catalog *award.Catalog, store history.Store, logger *zap.Logger, metrics *observability.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Catalog:   catalog,
		Store:     store,
		Metrics:   metrics,
		Logger:    logger,
		AwardCode: pharmacy.AwardCode,
		now:       time.Now,
	}
}

// awardFor returns the award version in force on asOf, or the latest
// version when asOf is empty.
func (h *Handler) awardFor(asOf string) (*award.Award, error) {
	if asOf == "" {
		return h.Catalog.Latest(h.AwardCode)
	}
	on, err := time.Parse(dateLayout, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: as_of %q is not YYYY-MM-DD", errBadRequest, asOf)
	}
	return h.Catalog.For(h.AwardCode, on)
}

// awardVersion finds the exact version a saved calculation used, falling
// back to the latest one when it has since been removed from the catalog.
func (h *Handler) awardVersion(code, version string) *award.Award {
	for _, a := range h.Catalog.Versions(code) {
		if a.Version == version {
			return a
		}
	}
	a, err := h.Catalog.Latest(code)
	if err != nil {
		return nil
	}
	return a
}

// scheduleName returns the schedule that a request will actually be priced
// with: the requested one if the award defines it, otherwise the default.
func (h *Handler) scheduleName(a *award.Award, requested string) string {
	if requested == "" {
		requested = h.DefaultSchedule
	}
	if _, ok := a.Schedules[requested]; ok {
		return requested
	}
	if requested != "" {
		h.Logger.Warn("unknown schedule requested, using default",
			zap.String("schedule", requested),
			zap.String("default", a.DefaultSchedule),
		)
	}
	return a.DefaultSchedule
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate computes weekly pay.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}
	h.calculate(w, r, req)
}

// calculate runs a weekly calculation and optionally saves it.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request, req CalculateRequest) {
	a, err := h.awardFor(req.AsOf)
	if err != nil {
		writeAwardError(w, err)
		return
	}

	schedule := h.scheduleName(a, req.Schedule)
	in := req.toInput(schedule)

	start := time.Now()
	summary := award.NewCalculator(a, h.Logger).Calculate(in)
	h.Metrics.ObserveCalculation(schedule, string(in.Rate.EmploymentType), summary.Total, time.Since(start))
	h.Metrics.AddSkippedShifts(skippedShifts(in, summary))

	if !req.Save {
		writeJSON(w, http.StatusOK, toCalculationResponse(in.Rate, schedule, summary))
		return
	}

	rec := history.NewRecord(req.Label, in, summary, h.now())
	if err := h.Store.Save(r.Context(), rec); err != nil {
		h.Logger.Error("failed to save calculation", zap.String("id", rec.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save calculation", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// skippedShifts counts rostered days that priced at zero hours.
func skippedShifts(in award.WeeklyInput, s award.WeeklySummary) int {
	n := 0
	for _, d := range s.DailyBreakdown {
		if d.Hours.IsZero() {
			n++
		}
	}
	for _, sh := range in.Shifts {
		if (sh.Start == "") != (sh.End == "") {
			n++
		}
	}
	return n
}

// DecomposeShift prices a single shift.
// POST /api/shifts/decompose
func (h *Handler) DecomposeShift(w http.ResponseWriter, r *http.Request) {
	var req DecomposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	a, err := h.awardFor(req.AsOf)
	if err != nil {
		writeAwardError(w, err)
		return
	}

	rc := req.rateContext()
	base := req.BaseRate
	if !base.Valid {
		base = decimal.NewNullDecimal(a.BaseRate(rc).Rate)
	}

	day := award.Day(req.Day)
	if req.PublicHoliday {
		day = award.PublicHoliday
	}
	schedule := h.scheduleName(a, req.Schedule)
	res := award.NewCalculator(a, h.Logger).Decomposer(schedule).Decompose(award.ShiftRequest{
		Day:            day,
		Start:          req.Start,
		End:            req.End,
		BaseRate:       base,
		EmploymentType: rc.EmploymentType,
		CustomRate:     rc.CustomRate,
		Classification: rc.Classification,
	})

	writeJSON(w, http.StatusOK, DecomposeResponse{
		AwardVersion: a.Version,
		Schedule:     schedule,
		Day:          string(day),
		Hours:        res.Hours,
		Pay:          res.Pay,
		Overnight:    res.Overnight,
		Break:        BreakDTO{PaidMinutes: res.Break.PaidMinutes, UnpaidMinutes: res.Break.UnpaidMinutes},
		Segments:     toSegmentDTOs(res.Breakdown),
	})
}

// GetPenalty returns the multiplier at one minute.
// GET /api/penalty?day=Saturday&time=09:00&employment_type=casual
func (h *Handler) GetPenalty(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := h.awardFor(q.Get("as_of"))
	if err != nil {
		writeAwardError(w, err)
		return
	}

	day := award.Day(q.Get("day"))
	if !day.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid day", fmt.Errorf("unknown day %q", day))
		return
	}
	et := award.EmploymentType(q.Get("employment_type"))
	if et == "" {
		et = award.FullTime
	}

	name := h.scheduleName(a, q.Get("schedule"))
	s, _ := a.Schedule(name)
	p, err := s.ResolveAt(day, q.Get("time"), et, award.Classification(q.Get("classification")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid time", err)
		return
	}

	writeJSON(w, http.StatusOK, PenaltyDTO{
		Schedule:       name,
		Day:            string(day),
		Time:           q.Get("time"),
		EmploymentType: string(et),
		Multiplier:     p.Multiplier,
		Label:          p.Label,
	})
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

// GetAward describes the award version in force.
// GET /api/award?as_of=2025-07-01
func (h *Handler) GetAward(w http.ResponseWriter, r *http.Request) {
	a, err := h.awardFor(r.URL.Query().Get("as_of"))
	if err != nil {
		writeAwardError(w, err)
		return
	}

	dto := AwardDTO{
		Code:          a.Code,
		Name:          a.Name,
		Version:       a.Version,
		EffectiveFrom: a.EffectiveFrom.Format(dateLayout),
		CasualLoading: a.CasualLoading,
		Allowances: map[string]decimal.Decimal{
			"home_medicine_review":     a.Allowances.HomeMedicineReview,
			"laundry_full_time":        a.Allowances.LaundryFullTime,
			"laundry_part_time_casual": a.Allowances.LaundryPartTimeCasual,
			"broken_hill":              a.Allowances.BrokenHill,
			"motor_vehicle_per_km":     a.Allowances.MotorVehiclePerKm,
			"meal_overtime":            a.Allowances.MealOvertime,
			"meal_overtime_extra":      a.Allowances.MealOvertimeExtra,
		},
	}
	for _, v := range h.Catalog.Versions(a.Code) {
		dto.Versions = append(dto.Versions, v.Version)
	}
	for _, name := range a.ScheduleNames() {
		s := a.Schedules[name]
		bounds := s.Boundaries()
		sd := ScheduleDTO{
			Name:        name,
			Description: s.Description,
			Default:     name == a.DefaultSchedule,
			Boundaries:  make([]string, len(bounds)),
		}
		for i, b := range bounds {
			sd.Boundaries[i] = b.BoundaryString()
		}
		dto.Schedules = append(dto.Schedules, sd)
	}
	dto.Overtime.OrdinaryHours = a.Overtime.OrdinaryHours
	dto.Overtime.FirstTierHours = a.Overtime.FirstTierHours
	dto.Overtime.FirstTierMultiplier = a.Overtime.FirstTierMultiplier
	dto.Overtime.AfterMultiplier = a.Overtime.AfterMultiplier
	for _, t := range a.Breaks.Tiers {
		dto.Breaks = append(dto.Breaks, BreakTierDTO{
			MinHours:      t.MinHours,
			Exclusive:     t.Exclusive,
			PaidMinutes:   t.PaidMinutes,
			UnpaidMinutes: t.UnpaidMinutes,
		})
	}

	writeJSON(w, http.StatusOK, dto)
}

// ListClassifications returns classifications with their table rates.
// GET /api/classifications
func (h *Handler) ListClassifications(w http.ResponseWriter, r *http.Request) {
	a, err := h.awardFor(r.URL.Query().Get("as_of"))
	if err != nil {
		writeAwardError(w, err)
		return
	}

	dtos := make([]ClassificationDTO, 0, len(a.Classifications))
	for _, c := range a.Classifications {
		dto := ClassificationDTO{
			ID:             string(c.ID),
			Name:           c.Name,
			PharmacistTier: c.PharmacistTier,
			JuniorEligible: a.JuniorEligible(c.ID),
		}
		if rate, ok := a.TableRate(award.FullTime, c.ID); ok {
			dto.FullTimeRate = decimal.NewNullDecimal(rate)
		}
		if rate, ok := a.TableRate(award.Casual, c.ID); ok {
			dto.CasualRate = decimal.NewNullDecimal(rate)
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListAges returns the age brackets.
// GET /api/ages
func (h *Handler) ListAges(w http.ResponseWriter, r *http.Request) {
	a, err := h.awardFor(r.URL.Query().Get("as_of"))
	if err != nil {
		writeAwardError(w, err)
		return
	}

	dtos := make([]AgeDTO, 0, len(a.Ages))
	for _, age := range a.Ages {
		dto := AgeDTO{ID: string(age.ID), Name: age.Name}
		if pct, ok := a.Junior.Percentages[age.ID]; ok {
			dto.Percentage = decimal.NewNullDecimal(pct)
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// ListCalculations returns saved calculations, newest first.
// GET /api/calculations?limit=20&offset=0
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paging parameters", err)
		return
	}

	records, err := h.Store.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calculations", err)
		return
	}

	dtos := make([]CalculationListItemDTO, len(records))
	for i, rec := range records {
		dtos[i] = toListItem(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalculation returns one saved calculation.
// GET /api/calculations/{id}
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// DeleteCalculation removes a saved calculation.
// DELETE /api/calculations/{id}
func (h *Handler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Calculation not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete calculation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCalculation downloads a saved calculation.
// GET /api/calculations/{id}/export.{format}
func (h *Handler) ExportCalculation(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported export format", err)
		return
	}
	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	report := export.Report{
		Title:        rec.Label,
		Schedule:     rec.Schedule,
		Rate:         rec.Input.Rate,
		CalculatedAt: rec.CreatedAt,
		Summary:      rec.Summary,
	}
	if a := h.awardVersion(rec.AwardCode, rec.AwardVersion); a != nil {
		report.AwardName = a.Name
	}

	// Render to a buffer first so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		h.Logger.Error("export failed", zap.String("id", rec.ID), zap.String("format", string(format)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to export calculation", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="calculation-%s.%s"`, rec.ID, format.Extension()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// loadRecord fetches the record named by the {id} URL parameter, writing
// the error reply itself when it cannot.
func (h *Handler) loadRecord(w http.ResponseWriter, r *http.Request) (history.Record, bool) {
	id := chi.URLParam(r, "id")
	if !history.ValidID(id) {
		writeError(w, http.StatusNotFound, "Calculation not found", &history.NotFoundError{ID: id})
		return history.Record{}, false
	}
	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Calculation not found", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to load calculation", err)
		}
		return history.Record{}, false
	}
	return rec, true
}

func listOptions(r *http.Request) (history.ListOptions, error) {
	var opts history.ListOptions
	q := r.URL.Query()
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("limit %q must be a non-negative integer", s)
		}
		opts.Limit = n
	}
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("offset %q must be a non-negative integer", s)
		}
		opts.Offset = n
	}
	return opts, nil
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness and the award version in force.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	a, err := h.Catalog.Latest(h.AwardCode)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "No award loaded", err)
		return
	}
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok", AwardCode: a.Code, AwardVersion: a.Version})
}

// =============================================================================
// HELPERS
// =============================================================================

var errBadRequest = errors.New("bad request")

// writeAwardError maps award lookup failures to HTTP statuses.
func writeAwardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
	case errors.Is(err, award.ErrUnknownAward):
		writeError(w, http.StatusNotFound, "Award not found", err)
	case errors.Is(err, award.ErrNoVersionInForce):
		writeError(w, http.StatusNotFound, "No award version in force", err)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to load award", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
