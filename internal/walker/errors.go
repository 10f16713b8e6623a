// SPDX-License-Identifier: MPL-2.0

package walker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShapeMismatch is the sentinel error wrapped by ShapeError.
	ErrShapeMismatch = errors.New("grammar and runtime trees differ")

	// ErrMissingExecutable is returned when the reached leaf has no executable.
	ErrMissingExecutable = errors.New("no executable configured")
)

type (
	// ShapeKind identifies which side of a shape comparison failed.
	ShapeKind string

	// ShapeError reports a command or argument present in one tree but not
	// in the other.
	ShapeError struct {
		// Path is the command path where the mismatch was found.
		Path []string
		// Kind is "argument" or "subcommand".
		Kind ShapeKind
		// Name is the argument id or subcommand name.
		Name string
		// Missing names the tree that lacks the entry ("runtime" or "grammar").
		Missing string
	}

	// MissingExecutableError reports the leaf command that cannot be launched.
	MissingExecutableError struct {
		Path []string
	}
)

const (
	// KindArgument marks a mismatch on an argument.
	KindArgument ShapeKind = "argument"
	// KindSubcommand marks a mismatch on a subcommand.
	KindSubcommand ShapeKind = "subcommand"
	// KindMatch marks a matched subcommand unknown to the grammar.
	KindMatch ShapeKind = "match"
)

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s %q missing from %s tree", strings.Join(e.Path, " "), e.Kind, e.Name, e.Missing)
}

// Unwrap returns ErrShapeMismatch for errors.Is() compatibility.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// Error implements the error interface.
func (e *MissingExecutableError) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(e.Path, " "), ErrMissingExecutable)
}

// Unwrap returns ErrMissingExecutable for errors.Is() compatibility.
func (e *MissingExecutableError) Unwrap() error {
	return ErrMissingExecutable
}
