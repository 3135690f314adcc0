package cli

import (
	"context"
	"errors"
	"io"
)

// Execute runs the CLI with args and returns the process exit code.
// Command errors are reported on stderr in text mode, or as a JSON error
// envelope on stdout in JSON mode.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil args
		args = []string{}
	}

	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	// Scenario failures were already reported by the test command.
	if errors.Is(err, ErrScenariosFailed) {
		return GetExitCode(err)
	}

	// Anything cobra rejects before RunE (unknown flags, bad args) is a
	// command error.
	code := ExitCommandError
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: stderr, Verbose: opts.Verbose}
	if opts.Format == "json" {
		formatter.Writer = stdout
	}
	_ = formatter.Error(ErrorCode(err), err.Error(), errorDetails(err))

	return code
}
