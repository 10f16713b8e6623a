// SPDX-License-Identifier: MPL-2.0

package envvar

import "strings"

type (
	// Occurrence is one appearance of an argument in an invocation,
	// holding the raw values it carried in order.
	Occurrence []string

	// Entry is one encoded environment assignment.
	Entry struct {
		Name  Name
		Value string
	}

	// Encoder formats argument occurrences into environment entries.
	Encoder struct {
		defaults Delimiters
	}
)

var defaultEncoder = NewEncoder(DefaultDelimiters())

// NewEncoder creates an Encoder whose Specs fall back to the given delimiters.
func NewEncoder(defaults Delimiters) *Encoder {
	return &Encoder{defaults: defaults}
}

// Defaults returns the delimiters used for Specs that do not set their own.
func (e *Encoder) Defaults() Delimiters {
	return e.defaults
}

// Encode joins the values of each occurrence with the value delimiter and the
// occurrences with the occurrence delimiter. It reports false when there are
// no occurrences: an absent argument produces no entry, not an empty value.
//
// Delimiter characters inside values are not escaped.
func (e *Encoder) Encode(id string, spec *Spec, occurrences []Occurrence) (Entry, bool) {
	if len(occurrences) == 0 {
		return Entry{}, false
	}

	name, d := spec.Resolve(id, e.defaults)

	parts := make([]string, len(occurrences))
	for i, occ := range occurrences {
		parts[i] = strings.Join(occ, d.Value)
	}

	return Entry{Name: name, Value: strings.Join(parts, d.Occurrence)}, true
}

// Encode encodes with the built-in delimiters.
func Encode(id string, spec *Spec, occurrences []Occurrence) (Entry, bool) {
	return defaultEncoder.Encode(id, spec, occurrences)
}
