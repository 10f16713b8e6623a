// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/shargs/shargs/internal/launch"
)

const (
	// ExitFailure covers input, configuration, shape and launch errors.
	ExitFailure launch.ExitCode = 1
	// ExitUsage is returned when the trailing arguments do not match the grammar.
	ExitUsage launch.ExitCode = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code launch.ExitCode
	Err  error
	// Reported is set when the message has already been written, e.g. by the
	// grammar's own usage output or by the child process.
	Reported bool
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
