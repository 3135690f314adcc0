package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/cutoff/internal/driver"
	"github.com/roach88/cutoff/internal/recorder"
	"github.com/roach88/cutoff/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config   string
	Trace    bool
	Database string

	// Sessions allows overriding the session token generator (for testing).
	// If nil, defaults to recorder.UUIDv7Generator.
	Sessions recorder.SessionGenerator
}

// RunResult is the JSON payload of run and sum.
type RunResult struct {
	Threshold int64               `json:"threshold"`
	Outcomes  []driver.Outcome    `json:"outcomes"`
	Recorded  []recorder.Recorded `json:"recorded,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a driver and print each sum",
		Long: `Evaluate every sequence of a driver and print one "<label>: <total>" line each.

Without --config the built-in driver is used. A config is a CUE file:

  threshold: 100
  sequences: [
      {label: "Sum", items: [10, 20, 30, 40, 50]},
  ]

Examples:
  cutoff run
  cutoff run --trace
  cutoff run --config ./driver.cue --db ./runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDriverCommand(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to a CUE driver definition")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, traceUsage)
	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite database")

	return cmd
}

// traceUsage describes --trace. JSON output always carries the steps.
const traceUsage = "print the running total after each item (text output; JSON always includes steps)"

func runDriverCommand(opts *RunOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	d := driver.Default()
	if opts.Config != "" {
		logger.Debug("loading driver", "config", opts.Config)
		loaded, err := driver.Load(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load driver", err)
		}
		d = loaded
	}

	return runDriver(opts, d, cmd, logger)
}

// runDriver evaluates d, optionally records the outcomes, and writes output.
func runDriver(opts *RunOptions, d *driver.Driver, cmd *cobra.Command, logger *slog.Logger) error {
	logger.Debug("evaluating driver", "threshold", d.Threshold, "sequences", len(d.Sequences))
	outcomes := d.Evaluate()
	for _, o := range outcomes {
		logger.Debug("sequence evaluated", "label", o.Label, "result", o.Result.String())
	}

	result := RunResult{Threshold: d.Threshold, Outcomes: outcomes}

	if opts.Database != "" {
		recorded, err := recordOutcomes(cmdContext(cmd), opts, d.Threshold, outcomes, logger)
		if err != nil {
			return err
		}
		result.Recorded = recorded
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	if err := driver.WriteOutcomes(cmd.OutOrStdout(), outcomes, opts.Trace); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func recordOutcomes(ctx context.Context, opts *RunOptions, threshold int64, outcomes []driver.Outcome, logger *slog.Logger) ([]recorder.Recorded, error) {
	logger.Info("opening run log", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	recorded, err := recorder.New(st, opts.Sessions).Record(ctx, threshold, outcomes)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to record runs", err)
	}

	inserted := 0
	for _, r := range recorded {
		if r.Inserted {
			inserted++
		}
	}
	logger.Info("runs recorded", "inserted", inserted, "duplicates", len(recorded)-inserted)
	return recorded, nil
}

// cmdContext returns the command's context, or Background when the command
// was executed without one.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
