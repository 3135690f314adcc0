package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/roach88/cutoff/internal/driver"
	"github.com/roach88/cutoff/internal/store"
	"github.com/roach88/cutoff/internal/sum"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Scenario failure
	ExitCommandError = 2 // Command error (invalid input, missing files, database errors)
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeLoadFailed   = "E004" // Driver file could not be parsed
	ErrCodeInvalidInput = "E201" // Non-integer sequence item
	ErrCodeRunNotFound  = "E302" // No run with the given ID
	ErrCodeTestFailed   = "E401" // One or more scenarios failed
)

// ErrScenariosFailed is wrapped by the test command when any scenario fails.
var ErrScenariosFailed = errors.New("scenarios failed")

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode maps an error to the code shown to users.
func ErrorCode(err error) string {
	switch {
	case sum.IsInvalidInput(err):
		return ErrCodeInvalidInput
	case errors.Is(err, store.ErrRunNotFound):
		return ErrCodeRunNotFound
	case errors.Is(err, driver.ErrNoSequences):
		return ErrCodeLoadFailed
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	}

	var loadErr *driver.LoadError
	if errors.As(err, &loadErr) {
		return ErrCodeLoadFailed
	}

	if errors.Is(err, ErrScenariosFailed) {
		return ErrCodeTestFailed
	}
	return ErrCodeGeneric
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E201", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// errorDetails returns structured details for known error types.
func errorDetails(err error) interface{} {
	var ie *sum.InvalidInputError
	if errors.As(err, &ie) {
		return map[string]interface{}{
			"source": ie.Source,
			"index":  ie.Index,
			"value":  ie.Value,
			"reason": ie.Reason,
		}
	}
	return nil
}
