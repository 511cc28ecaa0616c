package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/award-engine/award"
)

type penaltyOptions struct {
	casual         bool
	schedule       string
	classification string
}

func newPenaltyCmd(root *rootOptions) *cobra.Command {
	opts := &penaltyOptions{}
	cmd := &cobra.Command{
		Use:   "penalty <day> <HH:MM>",
		Short: "Show the penalty multiplier at one minute",
		Example: `  paycalc penalty Saturday 09:00 --casual
  paycalc penalty "Public Holiday" 14:30 --schedule legacy`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := award.Day(args[0])
			if !day.Valid() {
				return fmt.Errorf("unknown day %q", args[0])
			}
			a, err := root.award("")
			if err != nil {
				return err
			}
			s, ok := a.Schedule(opts.schedule)
			if !ok {
				return fmt.Errorf("award %s has no schedule %q", a.Code, opts.schedule)
			}

			et := award.FullTime
			if opts.casual {
				et = award.Casual
			}
			p, err := s.ResolveAt(day, args[1], et, award.Classification(opts.classification))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: ×%s %s\n", day, args[1], et, p.Multiplier, p.Label)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.casual, "casual", false, "use casual multipliers")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", "penalty schedule (default: the award default)")
	cmd.Flags().StringVar(&opts.classification, "classification", "", "classification, for bands that exempt some")
	return cmd
}
