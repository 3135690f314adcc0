package cli

import (
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/cutoff/internal/ir"
	"github.com/roach88/cutoff/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Label    string
	ID       string
}

// HistoryResult is the JSON payload of history.
type HistoryResult struct {
	Runs  []ir.Run `json:"runs"`
	Total int      `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with --db, oldest first.

Examples:
  cutoff history --db ./runs.db
  cutoff history --db ./runs.db --label "Large sum"
  cutoff history --db ./runs.db --id 3f2a... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Label, "label", "", "only show runs with this label")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show a single run by ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmdContext(cmd)

	// Reading must not create an empty database as a side effect.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database), fs.ErrNotExist)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var runs []ir.Run
	if opts.ID != "" {
		run, err := st.ReadRun(ctx, opts.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		runs = []ir.Run{run}
	} else {
		runs, err = st.ListRuns(ctx, ir.NormalizeLabel(opts.Label))
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(HistoryResult{Runs: runs, Total: len(runs)})
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tLABEL\tTOTAL\tCONSUMED\tCROSSED\tID")
	for _, r := range runs {
		id := r.ID
		if !opts.Verbose {
			id = truncateID(id)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d/%d\t%t\t%s\n", r.Seq, r.Label, r.Total, r.Consumed, len(r.Items), r.Crossed, id)
	}
	return tw.Flush()
}

// truncateID shortens a content-addressed ID for display.
func truncateID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
