// SPDX-License-Identifier: MPL-2.0

package envvar

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const (
	// DefaultValueDelimiter joins the values of a single occurrence.
	DefaultValueDelimiter = ";"
	// DefaultOccurrenceDelimiter joins the occurrences of a repeatable argument.
	DefaultOccurrenceDelimiter = ","
)

// ErrInvalidSpec is the sentinel error wrapped by InvalidSpecError.
var ErrInvalidSpec = errors.New("invalid env_var specification")

type (
	// Delimiters holds the two separators used when encoding occurrences.
	Delimiters struct {
		// Value joins the values produced by one occurrence.
		Value string
		// Occurrence joins the per-occurrence strings.
		Occurrence string
	}

	// Spec is the runtime environment specification of one argument.
	// It is written either as a bare string (the variable name) or as an
	// object with a name and optional delimiters. Nil delimiter fields fall
	// back to the encoder defaults.
	Spec struct {
		Name                Name    `mapstructure:"name"`
		ValueDelimiter      *string `mapstructure:"value_delimiter"`
		OccurrenceDelimiter *string `mapstructure:"occurrence_delimiter"`
	}

	// InvalidSpecError is returned when an env_var value is neither a string
	// nor an object with a valid name.
	InvalidSpecError struct {
		Reason string
		Cause  error
	}
)

// Error implements the error interface for InvalidSpecError.
func (e *InvalidSpecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid env_var: %s: %v", e.Reason, e.Cause)
	}
	return "invalid env_var: " + e.Reason
}

// Unwrap returns ErrInvalidSpec for errors.Is() compatibility.
func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

// DefaultDelimiters returns the built-in delimiters (";" and ",").
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Value:      DefaultValueDelimiter,
		Occurrence: DefaultOccurrenceDelimiter,
	}
}

// ParseSpec decodes an env_var value from a generic document tree.
// A string is shorthand for {name: <string>}.
func ParseSpec(raw any) (*Spec, error) {
	switch v := raw.(type) {
	case string:
		spec := &Spec{Name: Name(v)}
		if ok, errs := spec.Name.IsValid(); !ok {
			return nil, &InvalidSpecError{Reason: "bad name", Cause: errs[0]}
		}
		return spec, nil
	case map[string]any:
		var spec Spec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &spec,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(v); err != nil {
			return nil, &InvalidSpecError{Reason: "bad object", Cause: err}
		}
		if ok, errs := spec.Name.IsValid(); !ok {
			return nil, &InvalidSpecError{Reason: "bad name", Cause: errs[0]}
		}
		return &spec, nil
	default:
		return nil, &InvalidSpecError{Reason: fmt.Sprintf("expected string or object, got %T", raw)}
	}
}

// Resolve returns the variable name and delimiters for the argument id.
// A nil Spec derives the name from id and uses the given defaults; a non-nil
// Spec always carries a name, since ParseSpec rejects empty ones.
func (s *Spec) Resolve(id string, defaults Delimiters) (Name, Delimiters) {
	if s == nil {
		return Transliterate(id), defaults
	}

	d := defaults
	if s.ValueDelimiter != nil {
		d.Value = *s.ValueDelimiter
	}
	if s.OccurrenceDelimiter != nil {
		d.Occurrence = *s.OccurrenceDelimiter
	}

	return s.Name, d
}
