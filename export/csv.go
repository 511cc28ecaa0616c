package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/warp/award-engine/award"
)

// SegmentRow is one CSV line. Money and hours are fixed to two places.
type SegmentRow struct {
	Day           string `csv:"day"`
	PublicHoliday bool   `csv:"public_holiday"`
	RateDay       string `csv:"rate_day"`
	Kind          string `csv:"kind"`
	Start         string `csv:"start"`
	End           string `csv:"end"`
	Label         string `csv:"label"`
	Hours         string `csv:"hours"`
	BaseRate      string `csv:"base_rate"`
	Multiplier    string `csv:"multiplier"`
	Rate          string `csv:"rate"`
	Pay           string `csv:"pay"`
}

// SegmentRows flattens the daily breakdown.
func SegmentRows(s award.WeeklySummary) []SegmentRow {
	var rows []SegmentRow
	for _, d := range s.DailyBreakdown {
		for _, seg := range d.Segments {
			rows = append(rows, SegmentRow{
				Day:           string(d.Day),
				PublicHoliday: d.PublicHoliday,
				RateDay:       string(seg.Day),
				Kind:          string(seg.Kind),
				Start:         seg.Start,
				End:           seg.End,
				Label:         seg.Label,
				Hours:         seg.Hours.StringFixed(2),
				BaseRate:      seg.BaseRate.StringFixed(2),
				Multiplier:    seg.Multiplier.String(),
				Rate:          seg.Rate.StringFixed(4),
				Pay:           seg.Pay.StringFixed(2),
			})
		}
	}
	return rows
}

// WriteCSV writes one row per segment with a header line.
func WriteCSV(w io.Writer, s award.WeeklySummary) error {
	rows := SegmentRows(s)
	if rows == nil {
		rows = []SegmentRow{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]SegmentRow, error) {
	var rows []SegmentRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}
