package cli

import (
	"context"
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitIssues      = 1 // validation issues found, or a command failed
	ExitUsage       = 2 // bad flags or arguments, unreadable or unparsable input
	ExitInterrupted = 130
)

// ExitError carries the process exit code for a failed command. A nil Err
// means the command already reported what went wrong.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Silent reports whether the error has already been reported to the user.
func (e *ExitError) Silent() bool { return e.Err == nil }

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

func issuesFound() error {
	return &ExitError{Code: ExitIssues}
}

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return ExitIssues
}
