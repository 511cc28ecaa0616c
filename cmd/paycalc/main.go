/*
paycalc - Command line award pay calculator

PURPOSE:
  Runs the award engine without the HTTP server: price a week from a YAML
  roster, look up the penalty at one minute, or print the award tables.

COMMANDS:
  paycalc calculate -f week.yaml [--schedule legacy] [--format text|csv|xlsx -o out]
  paycalc penalty <day> <HH:MM> [--casual] [--schedule legacy]
  paycalc award

GLOBAL FLAGS:
  --award      Award document overriding the embedded MA000012
  --as-of      Use the award version in force on a date (YYYY-MM-DD),
               overriding a roster file's as_of
  --log-level  Engine diagnostics on stderr (default warn)

SEE ALSO:
  - week.go: Roster file format
  - export/: Output formats
*/
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/observability"
	"github.com/warp/award-engine/pharmacy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	awardFile string
	asOf      string
	logLevel  string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "paycalc",
		Short:         "Estimate pay under the Pharmacy Industry Award",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := observability.NewLogger(opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.awardFile, "award", "", "award document (default: embedded MA000012)")
	cmd.PersistentFlags().StringVar(&opts.asOf, "as-of", "", "use the award version in force on this date (YYYY-MM-DD); overrides a roster's as_of")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "diagnostic log level")

	cmd.AddCommand(
		newCalculateCmd(opts),
		newPenaltyCmd(opts),
		newAwardCmd(opts),
	)
	return cmd
}

// award loads the catalog and picks the version in force. The --as-of flag
// wins over date, which is the roster file's as_of.
func (o *rootOptions) award(date string) (*award.Award, error) {
	catalog, err := pharmacy.LoadCatalog(o.awardFile)
	if err != nil {
		return nil, err
	}
	if o.asOf != "" {
		date = o.asOf
	}
	if date == "" {
		return catalog.Latest(pharmacy.AwardCode)
	}
	on, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("as-of %q is not YYYY-MM-DD", date)
	}
	return catalog.For(pharmacy.AwardCode, on)
}

func (o *rootOptions) log() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}
