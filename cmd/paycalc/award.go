package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/award-engine/award"
)

func newAwardCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "award",
		Short: "Print the award version in force and its rate tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.award("")
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "%s %s\n", a.Code, a.Name)
			fmt.Fprintf(tw, "Version:\t%s (from %s)\n", a.Version, a.EffectiveFrom.Format("2006-01-02"))
			fmt.Fprintf(tw, "Casual loading:\t%s\n", a.CasualLoading)
			for _, name := range a.ScheduleNames() {
				marker := ""
				if name == a.DefaultSchedule {
					marker = " (default)"
				}
				fmt.Fprintf(tw, "Schedule:\t%s%s\t%s\n", name, marker, a.Schedules[name].Description)
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "CLASSIFICATION\tFULL/PART-TIME\tCASUAL\tNAME")
			for _, c := range a.Classifications {
				ft, casual := "-", "-"
				if r, ok := a.TableRate(award.FullTime, c.ID); ok {
					ft = r.StringFixed(2)
				}
				if r, ok := a.TableRate(award.Casual, c.ID); ok {
					casual = r.StringFixed(2)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, ft, casual, c.Name)
			}
			return tw.Flush()
		},
	}
}
