// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "test.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		originalErr := errors.New("some error")
		err := FormatError(originalErr, "test.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "test.cue") {
			t.Errorf("error should contain filepath, got: %v", err)
		}
		if !errors.Is(err, originalErr) {
			t.Errorf("error should wrap the original, got: %v", err)
		}
		if errors.Is(err, ErrValidation) {
			t.Errorf("non-CUE error should not be a ValidationError, got: %v", err)
		}
	})

	t.Run("fs error keeps its chain", func(t *testing.T) {
		t.Parallel()

		err := FormatError(fs.ErrNotExist, "x.cue")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("errors.Is(err, fs.ErrNotExist) = false, got: %v", err)
		}
	})

	t.Run("CUE error becomes ValidationError", func(t *testing.T) {
		t.Parallel()

		v := cuecontext.New().CompileString(`a: {`)
		err := FormatError(v.Err(), "broken.cue")
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
		if ve.FilePath != "broken.cue" || len(ve.Problems) == 0 {
			t.Errorf("ValidationError = %+v", ve)
		}
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	single := &ValidationError{FilePath: "cli.json", Problems: []string{"name: incomplete value string"}}
	if got := single.Error(); got != "cli.json: name: incomplete value string" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(single, ErrValidation) {
		t.Error("ValidationError should wrap ErrValidation")
	}

	multi := &ValidationError{FilePath: "cli.json", Problems: []string{"a: x", "b: y"}}
	if got := multi.Error(); !strings.Contains(got, "validation failed:\n  a: x\n  b: y") {
		t.Errorf("Error() = %q", got)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: []string{}, expected: ""},
		{name: "single element", path: []string{"name"}, expected: "name"},
		{name: "nested path", path: []string{"env_var", "name"}, expected: "env_var.name"},
		{name: "array index", path: []string{"args", "0", "count"}, expected: "args[0].count"},
		{
			name:     "nested subcommand",
			path:     []string{"subcommands", "1", "build", "args", "0", "tag", "action"},
			expected: "subcommands[1].build.args[0].tag.action",
		},
		{name: "leading numeric element", path: []string{"0", "x"}, expected: "0.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("size at limit should pass, got %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("size over limit should fail")
	}
}
