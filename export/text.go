package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/warp/award-engine/award"
)

// printer formats money with Australian digit grouping.
var printer = message.NewPrinter(language.MustParse("en-AU"))

// money puts the sign ahead of the currency symbol: -$13.00.
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + printer.Sprintf("$%.2f", d.Neg().InexactFloat64())
	}
	return printer.Sprintf("$%.2f", d.InexactFloat64())
}

func hours(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// WriteText writes a plain-text payslip estimate.
func WriteText(w io.Writer, r Report) error {
	s := r.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if r.Title != "" {
		fmt.Fprintf(tw, "%s\n", r.Title)
	}
	fmt.Fprintf(tw, "Award:\t%s %s (%s)\n", s.AwardCode, r.AwardName, s.AwardVersion)
	if r.Schedule != "" {
		fmt.Fprintf(tw, "Schedule:\t%s\n", r.Schedule)
	}
	if r.Rate.Classification != "" {
		fmt.Fprintf(tw, "Employee:\t%s, %s\n", r.Rate.Classification, r.Rate.EmploymentType)
	}
	fmt.Fprintf(tw, "Base rate:\t%s/h\n\n", money(s.BaseRate))

	for _, d := range s.DailyBreakdown {
		day := string(d.Day)
		if d.PublicHoliday {
			day += " (public holiday)"
		}
		fmt.Fprintf(tw, "%s %s-%s\t\t%sh\t%s\n", day, d.Start, d.End, hours(d.Hours), money(d.Pay))
		for _, seg := range d.Segments {
			span := seg.Start + "-" + seg.End
			if seg.Kind == award.SegmentUnpaidBreak {
				span = ""
			}
			fmt.Fprintf(tw, "  %s\t%s\t%sh\t%s\n", span, seg.Label, hours(seg.Hours), money(seg.Pay))
		}
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Total hours:\t%s\n", hours(s.TotalHours))
	fmt.Fprintf(tw, "Ordinary pay:\t%s\n", money(s.TotalPay))
	if s.OvertimeHours.IsPositive() {
		fmt.Fprintf(tw, "Overtime:\t%sh\t%s\n", hours(s.OvertimeHours), money(s.OvertimePay))
	}
	for _, a := range s.AllowanceBreakdown {
		fmt.Fprintf(tw, "%s:\t%s\n", a.Name, money(a.Amount))
	}
	fmt.Fprintf(tw, "Total:\t%s\n", money(s.Total))

	return tw.Flush()
}
