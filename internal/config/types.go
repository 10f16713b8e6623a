// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	// LogLevelDebug logs every step of a run.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors (default).
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// EnvInheritAll inherits every host variable (default).
	// The values mirror launch.InheritMode.
	EnvInheritAll EnvInheritMode = "all"
	// EnvInheritNone starts the executable with the derived variables only.
	EnvInheritNone EnvInheritMode = "none"
	// EnvInheritAllow inherits only the variables listed in Allow.
	EnvInheritAllow EnvInheritMode = "allow"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidEnvInheritMode is returned when an EnvInheritMode value is not recognized.
	ErrInvalidEnvInheritMode = errors.New("invalid env inherit mode")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level of log records that are printed.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// EnvInheritMode controls host environment inheritance.
	EnvInheritMode string

	// InvalidEnvInheritModeError is returned when an EnvInheritMode value is not recognized.
	InvalidEnvInheritModeError struct {
		Value EnvInheritMode
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// the field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// LogLevel sets the logger level; --verbose forces debug.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// Delimiters are the default delimiters of env_var specifications.
		Delimiters DelimitersConfig `json:"delimiters" mapstructure:"delimiters"`
		// EnvInherit controls which host variables reach the executable.
		EnvInherit EnvInheritConfig `json:"env_inherit" mapstructure:"env_inherit"`
	}

	// DelimitersConfig overrides the built-in ";" and "," delimiters.
	DelimitersConfig struct {
		Value      string `json:"value" mapstructure:"value"`
		Occurrence string `json:"occurrence" mapstructure:"occurrence"`
	}

	// EnvInheritConfig configures host environment inheritance.
	EnvInheritConfig struct {
		Mode  EnvInheritMode `json:"mode" mapstructure:"mode"`
		Allow []string       `json:"allow" mapstructure:"allow"`
		Deny  []string       `json:"deny" mapstructure:"deny"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: LogLevelWarn,
		Delimiters: DelimitersConfig{
			Value:      ";",
			Occurrence: ",",
		},
		EnvInherit: EnvInheritConfig{
			Mode:  EnvInheritAll,
			Allow: []string{},
			Deny:  []string{},
		},
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid returns whether the LogLevel is one of the defined levels,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts the LogLevel to a slog.Level. Unknown values map to warn.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Error implements the error interface for InvalidEnvInheritModeError.
func (e *InvalidEnvInheritModeError) Error() string {
	return fmt.Sprintf("invalid env inherit mode %q (valid: all, none, allow)", e.Value)
}

// Unwrap returns ErrInvalidEnvInheritMode for errors.Is() compatibility.
func (e *InvalidEnvInheritModeError) Unwrap() error { return ErrInvalidEnvInheritMode }

// IsValid returns whether the EnvInheritMode is one of the defined modes,
// and a list of validation errors if it is not.
func (m EnvInheritMode) IsValid() (bool, []error) {
	switch m {
	case EnvInheritAll, EnvInheritNone, EnvInheritAllow:
		return true, nil
	default:
		return false, []error{&InvalidEnvInheritModeError{Value: m}}
	}
}

// IsValid returns whether the Config has valid fields. Environment overrides
// bypass the CUE schema, so this runs after every load.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.EnvInherit.Mode.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
