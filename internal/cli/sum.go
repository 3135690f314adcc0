package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/cutoff/internal/driver"
	"github.com/roach88/cutoff/internal/sum"
)

// SumOptions holds flags for the sum command.
type SumOptions struct {
	RunOptions
	Threshold int64
	Label     string
}

// NewSumCommand creates the sum command.
func NewSumCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SumOptions{RunOptions: RunOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "sum <int>...",
		Short: "Sum integers with the threshold cutoff",
		Long: `Sum the given integers left to right, stopping once the total exceeds
the threshold. Every argument must be an integer; nothing is summed otherwise.

Use -- before the first negative number so it is not read as a flag.

Examples:
  cutoff sum 25 50 75 100
  cutoff sum --threshold 10 4 4 4 4
  cutoff sum -- 90 -50 70`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(opts, args, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Threshold, "threshold", sum.DefaultThreshold, "stop once the running total exceeds this value")
	cmd.Flags().StringVar(&opts.Label, "label", "Sum", "label printed before the total")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, traceUsage)
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")

	return cmd
}

func runSum(opts *SumOptions, args []string, cmd *cobra.Command) error {
	items, err := sum.ParseItems("args", args)
	if err == nil {
		err = sum.CheckRange("args", items, opts.Threshold)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}

	d := &driver.Driver{
		Threshold: opts.Threshold,
		Sequences: []driver.Sequence{{Label: opts.Label, Items: items}},
	}
	return runDriver(&opts.RunOptions, d, cmd, newLogger(opts.RootOptions, cmd.ErrOrStderr()))
}
