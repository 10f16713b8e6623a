// SPDX-License-Identifier: MPL-2.0

package grammar

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/shargs/shargs/pkg/document"
	"github.com/shargs/shargs/pkg/envvar"
)

const (
	// noOptTrue is the implicit value of a switch given without "=value".
	noOptTrue = "true"
	// noOptIncrement is the implicit value of a counter given without "=value".
	noOptIncrement = "+1"
)

// recorder is a pflag.Value that keeps every raw occurrence of one flag
// according to the argument's action.
type recorder struct {
	def         *document.ArgDef
	occurrences []envvar.Occurrence
	count       int
}

var _ pflag.Value = (*recorder)(nil)

func newRecorder(def *document.ArgDef) *recorder {
	return &recorder{def: def}
}

// String renders the recorded value; before any Set it is the help default.
func (r *recorder) String() string {
	if len(r.occurrences) == 0 {
		return r.def.DefaultValue
	}
	parts := make([]string, len(r.occurrences))
	for i, occ := range r.occurrences {
		parts[i] = strings.Join(occ, " ")
	}
	return strings.Join(parts, ", ")
}

// Set records one appearance of the flag.
func (r *recorder) Set(s string) error {
	switch r.def.GetAction() {
	case document.ActionCount:
		if s == noOptIncrement {
			r.count++
		} else {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid count %q", s)
			}
			r.count = n
		}
		r.occurrences = []envvar.Occurrence{{strconv.Itoa(r.count)}}

	case document.ActionSetTrue:
		on, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", s)
		}
		if !on {
			r.occurrences = nil
			return nil
		}
		r.occurrences = []envvar.Occurrence{{noOptTrue}}

	case document.ActionAppend:
		r.occurrences = append(r.occurrences, splitValue(r.def, s))

	default:
		r.occurrences = []envvar.Occurrence{splitValue(r.def, s)}
	}
	return nil
}

// Type names the value in usage output.
func (r *recorder) Type() string {
	switch r.def.GetAction() {
	case document.ActionSetTrue:
		return "bool"
	case document.ActionCount:
		return "count"
	default:
		return cmp.Or(r.def.ValueName, "string")
	}
}

// noOptDefVal returns the implicit value for flags that take no argument.
func (r *recorder) noOptDefVal() string {
	switch r.def.GetAction() {
	case document.ActionSetTrue:
		return noOptTrue
	case document.ActionCount:
		return noOptIncrement
	default:
		return ""
	}
}

func splitValue(def *document.ArgDef, s string) envvar.Occurrence {
	if def.ValueDelimiter == "" {
		return envvar.Occurrence{s}
	}
	return strings.Split(s, def.ValueDelimiter)
}
