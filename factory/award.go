/*
Package factory converts award documents into engine values.

PURPOSE:
  Award rates are configuration, not code. An award version is written as a
  YAML (or JSON) document, and the factory turns it into an immutable
  *award.Award. Rate changes each July become a new document instead of a
  code change.

DOCUMENT SCHEMA (YAML):
  code: MA000012
  name: Pharmacy Industry Award
  version: "2024-07"
  effective_from: 2024-07-01
  casual_loading: 1.25
  rates:
    full_time_part_time: {pharmacy-assistant-1: 25.99}
    casual: {pharmacy-assistant-1: 32.49}
  junior:
    eligible: [pharmacy-assistant-1]
    percentages: {"16": 0.5}
  allowances: {home_medicine_review: 17.96, ...}
  overtime: {ordinary_hours: 38, first_tier_hours: 2, first_tier_multiplier: 1.5, after_multiplier: 2}
  breaks:
    - {min_hours: 4, paid_minutes: 10}
  default_schedule: current
  schedules:
    current:
      weekday:
        bands:
          - {from: "07:00", to: "08:00", label: Early Morning, multiplier: 1.25, casual_multiplier: 1.5}
        fallback: {label: Ordinary, multiplier: 1, casual_multiplier: 1}

MULTIPLE VERSIONS:
  A YAML stream may hold several documents separated by "---"; each becomes
  one award version (see ParseYAMLStream).

SEE ALSO:
  - award/award.go: Award type
  - pharmacy/: Embedded MA000012 documents
*/
package factory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/award-engine/award"
)

// ErrInvalidDocument is returned for documents that cannot be parsed or
// converted.
var ErrInvalidDocument = errors.New("invalid award document")

// DocumentError points at the offending field.
type DocumentError struct {
	Field string
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("award document field %s: %v", e.Field, e.Err)
}

func (e *DocumentError) Unwrap() error { return ErrInvalidDocument }

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// AwardDocument is the serialized form of an award version.
type AwardDocument struct {
	Code            string                 `yaml:"code" json:"code"`
	Name            string                 `yaml:"name" json:"name"`
	Version         string                 `yaml:"version" json:"version"`
	EffectiveFrom   string                 `yaml:"effective_from" json:"effective_from"`
	CasualLoading   decimal.Decimal        `yaml:"casual_loading" json:"casual_loading"`
	Classifications []ClassificationDoc    `yaml:"classifications" json:"classifications"`
	Ages            []AgeDoc               `yaml:"ages" json:"ages"`
	Rates           RatesDoc               `yaml:"rates" json:"rates"`
	Junior          JuniorDoc              `yaml:"junior" json:"junior"`
	Allowances      AllowancesDoc          `yaml:"allowances" json:"allowances"`
	Overtime        OvertimeDoc            `yaml:"overtime" json:"overtime"`
	Breaks          []BreakTierDoc         `yaml:"breaks" json:"breaks"`
	DefaultSchedule string                 `yaml:"default_schedule" json:"default_schedule"`
	Schedules       map[string]ScheduleDoc `yaml:"schedules" json:"schedules"`
}

// ClassificationDoc describes one classification.
type ClassificationDoc struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	PharmacistTier bool   `yaml:"pharmacist_tier,omitempty" json:"pharmacist_tier,omitempty"`
}

// AgeDoc describes one age bracket.
type AgeDoc struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// RatesDoc holds base hourly rates keyed by classification.
type RatesDoc struct {
	FullTimePartTime map[string]decimal.Decimal `yaml:"full_time_part_time" json:"full_time_part_time"`
	Casual           map[string]decimal.Decimal `yaml:"casual" json:"casual"`
}

// JuniorDoc holds junior percentages keyed by age bracket.
type JuniorDoc struct {
	Eligible    []string                   `yaml:"eligible" json:"eligible"`
	Percentages map[string]decimal.Decimal `yaml:"percentages" json:"percentages"`
}

// AllowancesDoc holds fixed allowance amounts.
type AllowancesDoc struct {
	HomeMedicineReview    decimal.Decimal `yaml:"home_medicine_review" json:"home_medicine_review"`
	LaundryFullTime       decimal.Decimal `yaml:"laundry_full_time" json:"laundry_full_time"`
	LaundryPartTimeCasual decimal.Decimal `yaml:"laundry_part_time_casual" json:"laundry_part_time_casual"`
	BrokenHill            decimal.Decimal `yaml:"broken_hill" json:"broken_hill"`
	MotorVehiclePerKm     decimal.Decimal `yaml:"motor_vehicle_per_km" json:"motor_vehicle_per_km"`
	MealOvertime          decimal.Decimal `yaml:"meal_overtime" json:"meal_overtime"`
	MealOvertimeExtra     decimal.Decimal `yaml:"meal_overtime_extra" json:"meal_overtime_extra"`
}

// OvertimeDoc holds the weekly overtime policy.
type OvertimeDoc struct {
	OrdinaryHours       decimal.Decimal `yaml:"ordinary_hours" json:"ordinary_hours"`
	FirstTierHours      decimal.Decimal `yaml:"first_tier_hours" json:"first_tier_hours"`
	FirstTierMultiplier decimal.Decimal `yaml:"first_tier_multiplier" json:"first_tier_multiplier"`
	AfterMultiplier     decimal.Decimal `yaml:"after_multiplier" json:"after_multiplier"`
}

// BreakTierDoc is one break tier.
type BreakTierDoc struct {
	MinHours      decimal.Decimal `yaml:"min_hours" json:"min_hours"`
	Exclusive     bool            `yaml:"exclusive,omitempty" json:"exclusive,omitempty"`
	PaidMinutes   int             `yaml:"paid_minutes,omitempty" json:"paid_minutes,omitempty"`
	UnpaidMinutes int             `yaml:"unpaid_minutes,omitempty" json:"unpaid_minutes,omitempty"`
}

// ScheduleDoc is a penalty schedule.
type ScheduleDoc struct {
	Description   string     `yaml:"description,omitempty" json:"description,omitempty"`
	Weekday       DayRuleDoc `yaml:"weekday" json:"weekday"`
	Saturday      DayRuleDoc `yaml:"saturday" json:"saturday"`
	Sunday        DayRuleDoc `yaml:"sunday" json:"sunday"`
	PublicHoliday DayRuleDoc `yaml:"public_holiday" json:"public_holiday"`
}

// DayRuleDoc is the band list for one category of day.
type DayRuleDoc struct {
	CasualFlat *BandDoc  `yaml:"casual_flat,omitempty" json:"casual_flat,omitempty"`
	Bands      []BandDoc `yaml:"bands,omitempty" json:"bands,omitempty"`
	Fallback   BandDoc   `yaml:"fallback" json:"fallback"`
}

// BandDoc is a penalty band. From/To are ignored on fallback and flat bands.
type BandDoc struct {
	From                  string          `yaml:"from,omitempty" json:"from,omitempty"`
	To                    string          `yaml:"to,omitempty" json:"to,omitempty"`
	Label                 string          `yaml:"label" json:"label"`
	Multiplier            decimal.Decimal `yaml:"multiplier" json:"multiplier"`
	CasualMultiplier      decimal.Decimal `yaml:"casual_multiplier" json:"casual_multiplier"`
	CasualLoading         decimal.Decimal `yaml:"casual_loading,omitempty" json:"casual_loading,omitempty"`
	CasualLabel           string          `yaml:"casual_label,omitempty" json:"casual_label,omitempty"`
	ExemptClassifications []string        `yaml:"exempt_classifications,omitempty" json:"exempt_classifications,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseYAML parses a single YAML document into an award.
func ParseYAML(data []byte) (*award.Award, error) {
	var doc AwardDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse award YAML: %w", errors.Join(ErrInvalidDocument, err))
	}
	return FromDocument(doc)
}

// ParseYAMLStream parses every document of a YAML stream.
func ParseYAMLStream(r io.Reader) ([]*award.Award, error) {
	dec := yaml.NewDecoder(r)
	var out []*award.Award
	for {
		var doc AwardDocument
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse award YAML: %w", errors.Join(ErrInvalidDocument, err))
		}
		a, err := FromDocument(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty award stream: %w", ErrInvalidDocument)
	}
	return out, nil
}

// ParseJSON parses a JSON document into an award.
func ParseJSON(data []byte) (*award.Award, error) {
	var doc AwardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse award JSON: %w", errors.Join(ErrInvalidDocument, err))
	}
	return FromDocument(doc)
}

// LoadFile reads award versions from a .yaml, .yml or .json file.
func LoadFile(path string) ([]*award.Award, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read award file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		a, err := ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return []*award.Award{a}, nil
	default:
		return ParseYAMLStream(bytes.NewReader(data))
	}
}

// FromDocument converts and validates a document.
func FromDocument(doc AwardDocument) (*award.Award, error) {
	effective, err := time.Parse("2006-01-02", doc.EffectiveFrom)
	if err != nil {
		return nil, &DocumentError{Field: "effective_from", Err: err}
	}

	a := &award.Award{
		Code:            doc.Code,
		Name:            doc.Name,
		Version:         doc.Version,
		EffectiveFrom:   effective,
		CasualLoading:   doc.CasualLoading,
		DefaultSchedule: doc.DefaultSchedule,
		Rates: award.RateTable{
			FullTimePartTime: classificationMap(doc.Rates.FullTimePartTime),
			Casual:           classificationMap(doc.Rates.Casual),
		},
		Junior: award.JuniorRates{
			Eligible:    classifications(doc.Junior.Eligible),
			Percentages: make(map[award.Age]decimal.Decimal, len(doc.Junior.Percentages)),
		},
		Allowances: award.AllowanceRates{
			HomeMedicineReview:    doc.Allowances.HomeMedicineReview,
			LaundryFullTime:       doc.Allowances.LaundryFullTime,
			LaundryPartTimeCasual: doc.Allowances.LaundryPartTimeCasual,
			BrokenHill:            doc.Allowances.BrokenHill,
			MotorVehiclePerKm:     doc.Allowances.MotorVehiclePerKm,
			MealOvertime:          doc.Allowances.MealOvertime,
			MealOvertimeExtra:     doc.Allowances.MealOvertimeExtra,
		},
		Overtime: award.OvertimePolicy{
			OrdinaryHours:       doc.Overtime.OrdinaryHours,
			FirstTierHours:      doc.Overtime.FirstTierHours,
			FirstTierMultiplier: doc.Overtime.FirstTierMultiplier,
			AfterMultiplier:     doc.Overtime.AfterMultiplier,
		},
		Schedules: make(map[string]award.Schedule, len(doc.Schedules)),
	}
	if a.Version == "" {
		a.Version = effective.Format("2006-01")
	}
	for age, pct := range doc.Junior.Percentages {
		a.Junior.Percentages[award.Age(age)] = pct
	}
	for _, c := range doc.Classifications {
		a.Classifications = append(a.Classifications, award.ClassificationInfo{
			ID:             award.Classification(c.ID),
			Name:           c.Name,
			PharmacistTier: c.PharmacistTier,
		})
	}
	for _, ag := range doc.Ages {
		a.Ages = append(a.Ages, award.AgeInfo{ID: award.Age(ag.ID), Name: ag.Name})
	}
	for _, t := range doc.Breaks {
		a.Breaks.Tiers = append(a.Breaks.Tiers, award.BreakTier{
			MinHours:      t.MinHours,
			Exclusive:     t.Exclusive,
			PaidMinutes:   t.PaidMinutes,
			UnpaidMinutes: t.UnpaidMinutes,
		})
	}
	for name, sd := range doc.Schedules {
		s, err := parseSchedule(name, sd)
		if err != nil {
			return nil, err
		}
		a.Schedules[name] = s
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func parseSchedule(name string, sd ScheduleDoc) (award.Schedule, error) {
	s := award.Schedule{Name: name, Description: sd.Description}
	var err error
	if s.Weekday, err = parseDayRule(name+".weekday", sd.Weekday); err != nil {
		return s, err
	}
	if s.Saturday, err = parseDayRule(name+".saturday", sd.Saturday); err != nil {
		return s, err
	}
	if s.Sunday, err = parseDayRule(name+".sunday", sd.Sunday); err != nil {
		return s, err
	}
	if s.PublicHoliday, err = parseDayRule(name+".public_holiday", sd.PublicHoliday); err != nil {
		return s, err
	}
	return s, nil
}

func parseDayRule(field string, rd DayRuleDoc) (award.DayRule, error) {
	rule := award.DayRule{Fallback: bandFromDoc(rd.Fallback)}
	if rd.CasualFlat != nil {
		flat := bandFromDoc(*rd.CasualFlat)
		rule.CasualFlat = &flat
	}
	for i, bd := range rd.Bands {
		b := bandFromDoc(bd)
		var err error
		if b.From, err = award.ParseBoundary(bd.From); err != nil {
			return rule, &DocumentError{Field: fmt.Sprintf("schedules.%s.bands[%d].from", field, i), Err: err}
		}
		if b.To, err = award.ParseBoundary(bd.To); err != nil {
			return rule, &DocumentError{Field: fmt.Sprintf("schedules.%s.bands[%d].to", field, i), Err: err}
		}
		rule.Bands = append(rule.Bands, b)
	}
	return rule, nil
}

func bandFromDoc(bd BandDoc) award.Band {
	return award.Band{
		Label:                 bd.Label,
		Multiplier:            bd.Multiplier,
		CasualMultiplier:      bd.CasualMultiplier,
		CasualLoading:         bd.CasualLoading,
		CasualLabel:           bd.CasualLabel,
		ExemptClassifications: classifications(bd.ExemptClassifications),
	}
}

func classificationMap(in map[string]decimal.Decimal) map[award.Classification]decimal.Decimal {
	out := make(map[award.Classification]decimal.Decimal, len(in))
	for k, v := range in {
		out[award.Classification(k)] = v
	}
	return out
}

func classifications(in []string) []award.Classification {
	if len(in) == 0 {
		return nil
	}
	out := make([]award.Classification, len(in))
	for i, s := range in {
		out[i] = award.Classification(s)
	}
	return out
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// ToDocument converts an award back to its document form.
func ToDocument(a *award.Award) AwardDocument {
	doc := AwardDocument{
		Code:            a.Code,
		Name:            a.Name,
		Version:         a.Version,
		EffectiveFrom:   a.EffectiveFrom.Format("2006-01-02"),
		CasualLoading:   a.CasualLoading,
		DefaultSchedule: a.DefaultSchedule,
		Rates: RatesDoc{
			FullTimePartTime: stringMap(a.Rates.FullTimePartTime),
			Casual:           stringMap(a.Rates.Casual),
		},
		Junior: JuniorDoc{
			Eligible:    classificationStrings(a.Junior.Eligible),
			Percentages: make(map[string]decimal.Decimal, len(a.Junior.Percentages)),
		},
		Allowances: AllowancesDoc{
			HomeMedicineReview:    a.Allowances.HomeMedicineReview,
			LaundryFullTime:       a.Allowances.LaundryFullTime,
			LaundryPartTimeCasual: a.Allowances.LaundryPartTimeCasual,
			BrokenHill:            a.Allowances.BrokenHill,
			MotorVehiclePerKm:     a.Allowances.MotorVehiclePerKm,
			MealOvertime:          a.Allowances.MealOvertime,
			MealOvertimeExtra:     a.Allowances.MealOvertimeExtra,
		},
		Overtime: OvertimeDoc{
			OrdinaryHours:       a.Overtime.OrdinaryHours,
			FirstTierHours:      a.Overtime.FirstTierHours,
			FirstTierMultiplier: a.Overtime.FirstTierMultiplier,
			AfterMultiplier:     a.Overtime.AfterMultiplier,
		},
		Schedules: make(map[string]ScheduleDoc, len(a.Schedules)),
	}
	for age, pct := range a.Junior.Percentages {
		doc.Junior.Percentages[string(age)] = pct
	}
	for _, c := range a.Classifications {
		doc.Classifications = append(doc.Classifications, ClassificationDoc{
			ID: string(c.ID), Name: c.Name, PharmacistTier: c.PharmacistTier,
		})
	}
	for _, ag := range a.Ages {
		doc.Ages = append(doc.Ages, AgeDoc{ID: string(ag.ID), Name: ag.Name})
	}
	for _, t := range a.Breaks.Tiers {
		doc.Breaks = append(doc.Breaks, BreakTierDoc{
			MinHours:      t.MinHours,
			Exclusive:     t.Exclusive,
			PaidMinutes:   t.PaidMinutes,
			UnpaidMinutes: t.UnpaidMinutes,
		})
	}
	for name, s := range a.Schedules {
		doc.Schedules[name] = ScheduleDoc{
			Description:   s.Description,
			Weekday:       dayRuleToDoc(s.Weekday),
			Saturday:      dayRuleToDoc(s.Saturday),
			Sunday:        dayRuleToDoc(s.Sunday),
			PublicHoliday: dayRuleToDoc(s.PublicHoliday),
		}
	}
	return doc
}

// ToYAML serializes an award as a YAML document.
func ToYAML(a *award.Award) ([]byte, error) {
	return yaml.Marshal(ToDocument(a))
}

// ToJSON serializes an award as indented JSON.
func ToJSON(a *award.Award) ([]byte, error) {
	return json.MarshalIndent(ToDocument(a), "", "  ")
}

func dayRuleToDoc(r award.DayRule) DayRuleDoc {
	doc := DayRuleDoc{Fallback: bandToDoc(r.Fallback, false)}
	if r.CasualFlat != nil {
		flat := bandToDoc(*r.CasualFlat, false)
		doc.CasualFlat = &flat
	}
	for _, b := range r.Bands {
		doc.Bands = append(doc.Bands, bandToDoc(b, true))
	}
	return doc
}

func bandToDoc(b award.Band, window bool) BandDoc {
	doc := BandDoc{
		Label:                 b.Label,
		Multiplier:            b.Multiplier,
		CasualMultiplier:      b.CasualMultiplier,
		CasualLoading:         b.CasualLoading,
		CasualLabel:           b.CasualLabel,
		ExemptClassifications: classificationStrings(b.ExemptClassifications),
	}
	if window {
		doc.From = b.From.BoundaryString()
		doc.To = b.To.BoundaryString()
	}
	return doc
}

func stringMap(in map[award.Classification]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func classificationStrings(in []award.Classification) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, c := range in {
		out[i] = string(c)
	}
	return out
}
