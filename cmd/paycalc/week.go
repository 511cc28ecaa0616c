package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/award-engine/award"
)

// WeekFile is a roster read by `paycalc calculate`:
//
//	employment_type: casual
//	classification: pharmacy-assistant-1
//	age: "17"
//	schedule: legacy
//	shifts:
//	  - {day: Saturday, start: "09:00", end: "13:00"}
//	  - {day: Monday, start: "22:00", end: "02:00", public_holiday: true}
//	allowances:
//	  laundry: true
//	  motor_vehicle_km: 42
type WeekFile struct {
	Label          string `yaml:"label"`
	EmploymentType string `yaml:"employment_type"`
	Classification string `yaml:"classification"`
	Age            string `yaml:"age"`
	CustomRate     string `yaml:"custom_rate"`
	Schedule       string `yaml:"schedule"`
	AsOf           string `yaml:"as_of"`

	Shifts []struct {
		Day           string `yaml:"day"`
		Start         string `yaml:"start"`
		End           string `yaml:"end"`
		PublicHoliday bool   `yaml:"public_holiday"`
	} `yaml:"shifts"`

	Allowances struct {
		HomeMedicineReview bool            `yaml:"home_medicine_review"`
		Laundry            bool            `yaml:"laundry"`
		BrokenHill         bool            `yaml:"broken_hill"`
		MotorVehicleKm     decimal.Decimal `yaml:"motor_vehicle_km"`
		Meals              decimal.Decimal `yaml:"meals"`
		ExtraMeals         decimal.Decimal `yaml:"extra_meals"`
	} `yaml:"allowances"`
}

// readWeekFile parses a roster from path, or stdin when path is "-".
func readWeekFile(path string, stdin io.Reader) (WeekFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return WeekFile{}, err
	}

	var w WeekFile
	if err := yaml.Unmarshal(data, &w); err != nil {
		return WeekFile{}, fmt.Errorf("%s: %w", path, err)
	}
	if w.EmploymentType == "" {
		w.EmploymentType = string(award.FullTime)
	}
	if len(w.Shifts) == 0 {
		return WeekFile{}, fmt.Errorf("%s: no shifts", path)
	}
	for i, s := range w.Shifts {
		if !award.Day(s.Day).Valid() {
			return WeekFile{}, fmt.Errorf("%s: shift %d: unknown day %q", path, i+1, s.Day)
		}
	}
	return w, nil
}

// Input converts the file to an engine input snapshot.
func (w WeekFile) Input() award.WeeklyInput {
	age := award.Age(w.Age)
	if age == "" {
		age = award.AgeAdult
	}
	in := award.WeeklyInput{
		Rate: award.RateContext{
			EmploymentType: award.EmploymentType(w.EmploymentType),
			Classification: award.Classification(w.Classification),
			Age:            age,
			CustomRate:     w.CustomRate,
		},
		Allowances: award.AllowanceSelection{
			HomeMedicineReview: w.Allowances.HomeMedicineReview,
			Laundry:            w.Allowances.Laundry,
			BrokenHill:         w.Allowances.BrokenHill,
			MotorVehicleKm:     w.Allowances.MotorVehicleKm,
			Meals:              w.Allowances.Meals,
			ExtraMeals:         w.Allowances.ExtraMeals,
		},
		Schedule: w.Schedule,
	}
	for _, s := range w.Shifts {
		in.Shifts = append(in.Shifts, award.ShiftInput{
			Day:           award.Day(s.Day),
			Start:         s.Start,
			End:           s.End,
			PublicHoliday: s.PublicHoliday,
		})
	}
	return in
}
