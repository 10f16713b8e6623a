// SPDX-License-Identifier: MPL-2.0

package document

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const (
	// ActionSet keeps a single occurrence; a repeated flag overrides the earlier one.
	ActionSet ArgAction = "set"
	// ActionAppend records one occurrence per appearance.
	ActionAppend ArgAction = "append"
	// ActionSetTrue is a boolean switch whose value is "true".
	ActionSetTrue ArgAction = "set_true"
	// ActionCount records the number of appearances as a single value.
	ActionCount ArgAction = "count"

	// Unbounded is the NumArgs maximum meaning "no upper limit".
	Unbounded = -1
)

var (
	// ErrInvalidArgAction is returned when an ArgAction value is not recognized.
	ErrInvalidArgAction = errors.New("invalid argument action")
	// ErrInvalidNumArgs is returned when a num_args value cannot be parsed.
	ErrInvalidNumArgs = errors.New("invalid num_args")
)

type (
	// ArgAction controls how repeated appearances of an argument are recorded.
	ArgAction string

	// InvalidArgActionError is returned when an ArgAction value is not recognized.
	// It wraps ErrInvalidArgAction for errors.Is() compatibility.
	InvalidArgActionError struct {
		Value ArgAction
	}

	// NumArgs is the arity of a positional argument: the minimum and maximum
	// number of values it consumes. Max is Unbounded for open ranges.
	NumArgs struct {
		Min int
		Max int
	}

	// InvalidNumArgsError is returned when a num_args value is malformed.
	InvalidNumArgsError struct {
		Value any
	}

	// ArgDef is the grammar definition of one argument. An argument without
	// Short and Long is positional.
	ArgDef struct {
		// ID is the argument identifier (the key of its single-key object).
		ID string `mapstructure:"-"`
		// Short is a single-character flag alias.
		Short string `mapstructure:"short"`
		// Long is the long flag name, without the leading dashes.
		Long string `mapstructure:"long"`
		// Help is the help text.
		Help string `mapstructure:"help"`
		// Required indicates the argument must be provided.
		Required bool `mapstructure:"required"`
		// Action controls occurrence recording (defaults to "set").
		Action ArgAction `mapstructure:"action"`
		// NumArgs is the arity of a positional argument (defaults to exactly 1).
		NumArgs *NumArgs `mapstructure:"num_args"`
		// ValueDelimiter splits one flag token into several values of the same occurrence.
		ValueDelimiter string `mapstructure:"value_delimiter"`
		// ValueName is the value placeholder shown in help.
		ValueName string `mapstructure:"value_name"`
		// DefaultValue is shown in help. It does not create an occurrence.
		DefaultValue string `mapstructure:"default_value"`
		// Hide removes the argument from help output.
		Hide bool `mapstructure:"hide"`
	}
)

// Error implements the error interface for InvalidArgActionError.
func (e *InvalidArgActionError) Error() string {
	return fmt.Sprintf("invalid argument action %q (valid: set, append, set_true, count)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidArgActionError) Unwrap() error {
	return ErrInvalidArgAction
}

// String returns the string representation of the ArgAction.
func (a ArgAction) String() string { return string(a) }

// IsValid returns whether the ArgAction is one of the defined actions,
// and a list of validation errors if it is not.
// The zero value ("") is valid; it is treated as "set".
func (a ArgAction) IsValid() (bool, []error) {
	switch a {
	case ActionSet, ActionAppend, ActionSetTrue, ActionCount, "":
		return true, nil
	default:
		return false, []error{&InvalidArgActionError{Value: a}}
	}
}

// Error implements the error interface for InvalidNumArgsError.
func (e *InvalidNumArgsError) Error() string {
	return fmt.Sprintf("invalid num_args %v (use N, \"N..\", \"N..M\" or \"..M\" with M >= 1)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidNumArgsError) Unwrap() error {
	return ErrInvalidNumArgs
}

// ParseNumArgs parses an arity from a number or a range string.
// Ranges are inclusive: "2..4" accepts two to four values, "1.." at least one.
func ParseNumArgs(raw any) (NumArgs, error) {
	invalid := &InvalidNumArgsError{Value: raw}

	switch v := reflect.ValueOf(raw); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return exactNumArgs(v.Int(), invalid)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() > math.MaxInt32 {
			return NumArgs{}, invalid
		}
		return exactNumArgs(int64(v.Uint()), invalid)
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f > math.MaxInt32 {
			return NumArgs{}, invalid
		}
		return exactNumArgs(int64(f), invalid)
	case reflect.String:
		return parseNumArgsRange(v.String(), invalid)
	default:
		return NumArgs{}, invalid
	}
}

func exactNumArgs(n int64, invalid error) (NumArgs, error) {
	if n < 1 || n > math.MaxInt32 {
		return NumArgs{}, invalid
	}
	return NumArgs{Min: int(n), Max: int(n)}, nil
}

func parseNumArgsRange(s string, invalid error) (NumArgs, error) {
	s = strings.TrimSpace(s)
	lo, hi, isRange := strings.Cut(s, "..")
	if !isRange {
		n, err := strconv.Atoi(s)
		if err != nil {
			return NumArgs{}, invalid
		}
		return exactNumArgs(int64(n), invalid)
	}

	na := NumArgs{Min: 0, Max: Unbounded}
	if lo != "" {
		n, err := strconv.Atoi(lo)
		if err != nil || n < 0 {
			return NumArgs{}, invalid
		}
		na.Min = n
	}
	hi = strings.TrimPrefix(hi, "=")
	if hi != "" {
		n, err := strconv.Atoi(hi)
		if err != nil || n < 1 || n < na.Min {
			return NumArgs{}, invalid
		}
		na.Max = n
	}
	return na, nil
}

// String renders the arity in range notation.
func (n NumArgs) String() string {
	switch {
	case n.Max == Unbounded:
		return fmt.Sprintf("%d..", n.Min)
	case n.Min == n.Max:
		return strconv.Itoa(n.Min)
	default:
		return fmt.Sprintf("%d..%d", n.Min, n.Max)
	}
}

// Accepts reports whether count values satisfy the upper bound.
func (n NumArgs) Accepts(count int) bool {
	return n.Max == Unbounded || count <= n.Max
}

// IsPositional reports whether the argument is positional (no short or long name).
func (a *ArgDef) IsPositional() bool {
	return a.Short == "" && a.Long == ""
}

// FlagName returns the long name the flag is registered under: Long, or
// Short for short-only flags. It is empty for positionals.
func (a *ArgDef) FlagName() string {
	if a.Long != "" {
		return a.Long
	}
	return a.Short
}

// GetAction returns the effective action (defaults to "set").
func (a *ArgDef) GetAction() ArgAction {
	if a.Action == "" {
		return ActionSet
	}
	return a.Action
}

// GetNumArgs returns the effective arity (defaults to exactly one value).
func (a *ArgDef) GetNumArgs() NumArgs {
	if a.NumArgs == nil {
		return NumArgs{Min: 1, Max: 1}
	}
	return *a.NumArgs
}

// MinValues returns how many values a positional must receive. Optional
// positionals may receive none.
func (a *ArgDef) MinValues() int {
	if !a.Required {
		return 0
	}
	return max(a.GetNumArgs().Min, 1)
}

// Validate checks the argument definition for combinations the matcher
// cannot represent.
func (a *ArgDef) Validate() error {
	if ok, errs := a.Action.IsValid(); !ok {
		return errs[0]
	}
	if a.Short != "" && len([]rune(a.Short)) != 1 {
		return fmt.Errorf("short %q must be a single character", a.Short)
	}
	if a.Short == "-" {
		return fmt.Errorf("short %q is reserved", a.Short)
	}
	if strings.HasPrefix(a.Long, "-") {
		return fmt.Errorf("long %q must not start with '-'", a.Long)
	}
	if a.IsPositional() {
		switch a.GetAction() {
		case ActionSetTrue, ActionCount:
			return fmt.Errorf("action %q requires a short or long flag name", a.GetAction())
		}
	} else if a.NumArgs != nil {
		return errors.New("num_args applies to positional arguments only; use value_delimiter for flags")
	}
	return nil
}
