// SPDX-License-Identifier: MPL-2.0

package grammar

import (
	"errors"
	"fmt"

	"github.com/shargs/shargs/pkg/envvar"
)

var (
	// ErrHelpShown is returned when the arguments asked for help or version
	// output. Nothing was matched and nothing should be launched.
	ErrHelpShown = errors.New("help shown")

	// ErrMatch is the sentinel error wrapped by MatchError.
	ErrMatch = errors.New("arguments do not match the grammar")
)

type (
	// Match is the result of matching an argument vector at one command level.
	Match struct {
		// Name is the canonical command name (aliases are resolved).
		Name string
		// Occurrences maps argument ids to the occurrences recorded at this
		// level. Arguments that did not appear have no key.
		Occurrences map[string][]envvar.Occurrence
		// Subcommand is the invoked child level, nil at the leaf.
		Subcommand *Match
	}

	// MatchError reports arguments that do not satisfy the grammar. The
	// matching engine has already printed its own diagnostic and usage.
	MatchError struct {
		// Command is the command path the error was raised at.
		Command string
		Err     error
	}
)

// Error implements the error interface.
func (e *MatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns ErrMatch and the engine error.
func (e *MatchError) Unwrap() []error {
	return []error{ErrMatch, e.Err}
}

// Get returns the occurrences of the argument id at this level.
func (m *Match) Get(id string) []envvar.Occurrence {
	if m == nil {
		return nil
	}
	return m.Occurrences[id]
}

// Leaf returns the deepest invoked level.
func (m *Match) Leaf() *Match {
	for m != nil && m.Subcommand != nil {
		m = m.Subcommand
	}
	return m
}

// Path returns the command names from this level down to the leaf.
func (m *Match) Path() []string {
	var path []string
	for ; m != nil; m = m.Subcommand {
		path = append(path, m.Name)
	}
	return path
}
