package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX workbook.
const (
	SheetSummary    = "Summary"
	SheetShifts     = "Shifts"
	SheetAllowances = "Allowances"
)

var shiftHeader = []any{"Day", "Public Holiday", "Rate Day", "Start", "End", "Label", "Hours", "Base Rate", "Multiplier", "Rate", "Pay"}

// WriteXLSX writes the report as a three-sheet workbook.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetSummary); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetShifts, SheetAllowances} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, r, bold, money); err != nil {
		return err
	}
	if err := writeShiftsSheet(f, r, bold, money); err != nil {
		return err
	}
	if err := writeAllowancesSheet(f, r, bold, money); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r Report, bold, money int) error {
	s := r.Summary
	rows := [][]any{
		{"Title", r.Title},
		{"Award", fmt.Sprintf("%s %s (%s)", s.AwardCode, r.AwardName, s.AwardVersion)},
		{"Schedule", r.Schedule},
		{"Classification", string(r.Rate.Classification)},
		{"Employment Type", string(r.Rate.EmploymentType)},
		{"Base Rate", s.BaseRate.InexactFloat64()},
		{"Total Hours", s.TotalHours.InexactFloat64()},
		{"Ordinary Pay", s.TotalPay.InexactFloat64()},
		{"Overtime Hours", s.OvertimeHours.InexactFloat64()},
		{"Overtime Pay", s.OvertimePay.InexactFloat64()},
		{"Allowances", s.Allowances.InexactFloat64()},
		{"Total", s.Total.InexactFloat64()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "B6", fmt.Sprintf("B%d", len(rows)), money); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "B", 24)
}

func writeShiftsSheet(f *excelize.File, r Report, bold, money int) error {
	if err := f.SetSheetRow(SheetShifts, "A1", &shiftHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetShifts, "A1", "K1", bold); err != nil {
		return err
	}

	row := 2
	for _, d := range r.Summary.DailyBreakdown {
		for _, seg := range d.Segments {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []any{
				string(d.Day), d.PublicHoliday, string(seg.Day), seg.Start, seg.End, seg.Label,
				seg.Hours.InexactFloat64(), seg.BaseRate.InexactFloat64(), seg.Multiplier.InexactFloat64(),
				seg.Rate.InexactFloat64(), seg.Pay.InexactFloat64(),
			}
			if err := f.SetSheetRow(SheetShifts, cell, &values); err != nil {
				return err
			}
			row++
		}
	}
	if row > 2 {
		if err := f.SetCellStyle(SheetShifts, "K2", fmt.Sprintf("K%d", row-1), money); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetShifts, "F", "F", 36)
}

func writeAllowancesSheet(f *excelize.File, r Report, bold, money int) error {
	header := []any{"Allowance", "Amount"}
	if err := f.SetSheetRow(SheetAllowances, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetAllowances, "A1", "B1", bold); err != nil {
		return err
	}
	for i, line := range r.Summary.AllowanceBreakdown {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{line.Name, line.Amount.InexactFloat64()}
		if err := f.SetSheetRow(SheetAllowances, cell, &values); err != nil {
			return err
		}
	}
	if n := len(r.Summary.AllowanceBreakdown); n > 0 {
		if err := f.SetCellStyle(SheetAllowances, "B2", fmt.Sprintf("B%d", n+1), money); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetAllowances, "A", "A", 44)
}
