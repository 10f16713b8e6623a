// SPDX-License-Identifier: MPL-2.0

package envvar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
var ErrInvalidName = errors.New("invalid environment variable name")

type (
	// Name is an environment variable name.
	Name string

	// InvalidNameError is returned when a Name is empty or contains '=' or NUL,
	// which cannot be represented in a process environment.
	InvalidNameError struct {
		Value Name
	}
)

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid environment variable name %q: must be non-empty and contain no '=' or NUL", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// IsValid returns whether the Name can be placed in a process environment,
// and a list of validation errors if it cannot.
func (n Name) IsValid() (bool, []error) {
	if n == "" || strings.ContainsAny(string(n), "=\x00") {
		return false, []error{&InvalidNameError{Value: n}}
	}
	return true, nil
}

// Transliterate maps an argument identifier to a canonical environment variable name.
// Example: "3-count" -> "__COUNT"
//
// Characters other than ASCII letters, digits and '_' become '_'. The first
// character is forced to '_' when the original first character is not an ASCII
// letter or '_'. The result is uppercased. The output has one character per
// input rune; empty input yields empty output.
func Transliterate(id string) Name {
	var b strings.Builder
	b.Grow(len(id))

	first := true
	for _, r := range id {
		c := r
		if !isWordChar(r) {
			c = '_'
		}
		if first && !isASCIILetter(r) && r != '_' {
			c = '_'
		}
		first = false

		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteRune(c)
	}

	return Name(b.String())
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isWordChar(r rune) bool {
	return isASCIILetter(r) || (r >= '0' && r <= '9') || r == '_'
}
