/*
Package export renders weekly pay summaries for people and spreadsheets.

FORMATS:
  - csv:  One row per segment, including unpaid break entries (gocsv)
  - xlsx: Workbook with Summary, Shifts and Allowances sheets (excelize)
  - text: Aligned plain-text payslip estimate (golang.org/x/text)

USAGE:
  report := export.Report{Title: "Week 12", Summary: summary}
  err := export.Write(w, export.FormatXLSX, report)

SEE ALSO:
  - api/handlers.go: /calculations/{id}/export.{format}
  - cmd/paycalc: --format flag
*/
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/warp/award-engine/award"
)

// ErrUnknownFormat is returned for unsupported export formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export format name.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatText Format = "text"
)

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "text", "txt", "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Report is a summary plus the context it was calculated in.
type Report struct {
	Title        string
	AwardName    string
	Schedule     string
	Rate         award.RateContext
	CalculatedAt time.Time
	Summary      award.WeeklySummary
}

// Write renders a report in the given format.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r.Summary)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatText:
		return WriteText(w, r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
