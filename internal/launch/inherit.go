// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shargs/shargs/pkg/envvar"
)

const (
	// InheritAll inherits every host environment variable.
	InheritAll InheritMode = "all"
	// InheritNone starts from an empty environment.
	InheritNone InheritMode = "none"
	// InheritAllow inherits only allowlisted host variables.
	InheritAllow InheritMode = "allow"
)

// ErrInvalidInheritMode is returned when an InheritMode value is not recognized.
var ErrInvalidInheritMode = errors.New("invalid env inherit mode")

type (
	// InheritMode controls which host environment variables reach the executable.
	InheritMode string

	// InvalidInheritModeError is returned when an InheritMode value is not recognized.
	// It wraps ErrInvalidInheritMode for errors.Is() compatibility.
	InvalidInheritModeError struct {
		Value InheritMode
	}

	// Inherit configures host environment inheritance. Deny applies in every mode.
	Inherit struct {
		Mode  InheritMode
		Allow []string
		Deny  []string
	}
)

// Error implements the error interface.
func (e *InvalidInheritModeError) Error() string {
	return fmt.Sprintf("invalid env inherit mode %q (valid: all, none, allow)", e.Value)
}

// Unwrap returns ErrInvalidInheritMode for errors.Is() compatibility.
func (e *InvalidInheritModeError) Unwrap() error { return ErrInvalidInheritMode }

// IsValid returns whether the InheritMode is one of the defined modes,
// and a list of validation errors if it is not. The zero value means "all".
func (m InheritMode) IsValid() (bool, []error) {
	switch m {
	case InheritAll, InheritNone, InheritAllow, "":
		return true, nil
	default:
		return false, []error{&InvalidInheritModeError{Value: m}}
	}
}

// hostEnv filters the "NAME=VALUE" entries of environ according to cfg.
func hostEnv(cfg Inherit, environ []string) *envvar.Environment {
	env := envvar.NewEnvironment()
	if cfg.Mode == InheritNone {
		return env
	}

	allowSet := make(map[string]struct{}, len(cfg.Allow))
	for _, name := range cfg.Allow {
		allowSet[name] = struct{}{}
	}
	denySet := make(map[string]struct{}, len(cfg.Deny))
	for _, name := range cfg.Deny {
		denySet[name] = struct{}{}
	}

	for _, entry := range environ {
		name, value, ok := splitEnvEntry(entry)
		if !ok {
			continue
		}
		if cfg.Mode == InheritAllow {
			if _, allowed := allowSet[name]; !allowed {
				continue
			}
		}
		if _, denied := denySet[name]; denied {
			continue
		}
		env.Set(envvar.Name(name), value)
	}
	return env
}

// BuildEnv overlays the derived variables on the inherited host variables
// and returns the result as "NAME=VALUE" strings ordered by name.
func BuildEnv(cfg Inherit, environ []string, derived *envvar.Environment) []string {
	env := hostEnv(cfg, environ)
	if derived != nil {
		derived.Each(func(name envvar.Name, value string) bool {
			env.Set(name, value)
			return true
		})
	}
	return env.Environ()
}

// splitEnvEntry splits "NAME=VALUE". A leading '=' belongs to the name, as in
// the per-drive variables of Windows ("=C:=C:\\").
func splitEnvEntry(entry string) (name, value string, ok bool) {
	if entry == "" {
		return "", "", false
	}
	idx := strings.IndexByte(entry[1:], '=')
	if idx == -1 {
		return "", "", false
	}
	idx++
	return entry[:idx], entry[idx+1:], true
}
