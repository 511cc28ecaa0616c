package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/export"
)

type calculateOptions struct {
	file     string
	schedule string
	format   string
	output   string
}

func newCalculateCmd(root *rootOptions) *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate weekly pay from a YAML roster",
		Example: `  paycalc calculate -f week.yaml
  paycalc calculate -f week.yaml --schedule legacy --format xlsx -o week.xlsx
  cat week.yaml | paycalc calculate -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "roster file, or - for stdin")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", "penalty schedule (overrides the file)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, csv or xlsx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runCalculate(cmd *cobra.Command, root *rootOptions, opts *calculateOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if format == export.FormatXLSX && opts.output == "" {
		return fmt.Errorf("--format xlsx needs --output")
	}

	week, err := readWeekFile(opts.file, cmd.InOrStdin())
	if err != nil {
		return err
	}
	a, err := root.award(week.AsOf)
	if err != nil {
		return err
	}

	in := week.Input()
	if opts.schedule != "" {
		in.Schedule = opts.schedule
	}
	if _, ok := a.Schedule(in.Schedule); !ok {
		return fmt.Errorf("award %s has no schedule %q (have %v)", a.Code, in.Schedule, a.ScheduleNames())
	}
	if in.Schedule == "" {
		in.Schedule = a.DefaultSchedule
	}

	summary := award.NewCalculator(a, root.log()).Calculate(in)
	report := export.Report{
		Title:        week.Label,
		AwardName:    a.Name,
		Schedule:     in.Schedule,
		Rate:         in.Rate,
		CalculatedAt: time.Now(),
		Summary:      summary,
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := export.Write(out, format, report); err != nil {
		return err
	}
	if opts.output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (total %s)\n", opts.output, summary.Total.StringFixed(2))
	}
	return nil
}
