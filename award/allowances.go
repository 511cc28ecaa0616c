package award

import "github.com/shopspring/decimal"

// =============================================================================
// ALLOWANCES - Fixed additive items
// =============================================================================

// Allowance display names.
const (
	AllowanceHomeMedicineReview = "Home Medicine Reviews"
	AllowanceLaundry            = "Laundry Allowance"
	AllowanceBrokenHill         = "Broken Hill Allowance"
	AllowanceMotorVehicle       = "Motor Vehicle Allowance"
	AllowanceMeal               = "Meal Allowance (Overtime)"
	AllowanceMealExtra          = "Extra Meal Allowance (Overtime > 4 hours)"
)

// AllowanceSelection is what the employee claims for the week. Counts and
// kilometres that are not positive are ignored.
type AllowanceSelection struct {
	// HomeMedicineReview is meant for pharmacist-tier classifications; the
	// engine does not check the classification.
	HomeMedicineReview bool
	Laundry            bool
	BrokenHill         bool
	MotorVehicleKm     decimal.Decimal
	Meals              decimal.Decimal
	ExtraMeals         decimal.Decimal
}

// Allowances prices a selection. shiftsWorked is the number of rostered
// days, used for per-shift laundry.
func (r AllowanceRates) Allowances(sel AllowanceSelection, et EmploymentType, shiftsWorked int) []AllowanceLine {
	var lines []AllowanceLine
	if sel.HomeMedicineReview {
		lines = append(lines, AllowanceLine{Name: AllowanceHomeMedicineReview, Amount: r.HomeMedicineReview})
	}
	if sel.Laundry {
		amount := r.LaundryFullTime
		if et != FullTime {
			amount = r.LaundryPartTimeCasual.Mul(decimal.NewFromInt(int64(shiftsWorked)))
		}
		lines = append(lines, AllowanceLine{Name: AllowanceLaundry, Amount: amount})
	}
	if sel.BrokenHill {
		lines = append(lines, AllowanceLine{Name: AllowanceBrokenHill, Amount: r.BrokenHill})
	}
	if sel.MotorVehicleKm.IsPositive() {
		lines = append(lines, AllowanceLine{Name: AllowanceMotorVehicle, Amount: sel.MotorVehicleKm.Mul(r.MotorVehiclePerKm)})
	}
	if sel.Meals.IsPositive() {
		lines = append(lines, AllowanceLine{Name: AllowanceMeal, Amount: sel.Meals.Mul(r.MealOvertime)})
	}
	if sel.ExtraMeals.IsPositive() {
		lines = append(lines, AllowanceLine{Name: AllowanceMealExtra, Amount: sel.ExtraMeals.Mul(r.MealOvertimeExtra)})
	}
	return lines
}
