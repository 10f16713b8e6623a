// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"

	"github.com/shargs/shargs/internal/issue"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	actionable := issue.NewErrorContext().
		WithOperation("read document").
		WithResource("cli.json").
		WithSuggestion("Verify the file path is correct").
		WithIssue(issue.DocumentNotFoundId).
		Wrap(errors.New("no such file")).
		BuildError()

	tests := []struct {
		name    string
		err     error
		verbose bool
		want    []string
		empty   bool
	}{
		{
			name:  "reported exit error is silent",
			err:   &ExitError{Code: ExitUsage, Err: errors.New("unknown flag"), Reported: true},
			empty: true,
		},
		{
			name: "actionable error",
			err:  actionable,
			want: []string{"failed to read document: cli.json", "Verify the file path is correct"},
		},
		{
			name:    "verbose adds the chain",
			err:     actionable,
			verbose: true,
			want:    []string{"Error chain:", "no such file"},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: []string{"boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := &app{opts: options{verbose: tt.verbose}}
			var buf bytes.Buffer
			a.handleError(&buf, fang.Styles{}, tt.err)

			out := buf.String()
			if tt.empty {
				if out != "" {
					t.Errorf("output = %q, want empty", out)
				}
				return
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	if got := formatErrorForDisplay(errors.New("plain"), true); got != "plain" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	err := issue.WrapWithContext(errors.New("cause"), "load configuration", "config.cue")
	got := formatErrorForDisplay(err, false)
	if !strings.HasPrefix(got, "failed to load configuration: config.cue") {
		t.Errorf("formatErrorForDisplay(actionable) = %q", got)
	}
}

func TestGetVersionString(t *testing.T) {
	t.Parallel()

	if got := getVersionString(); Version == "dev" && got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}
}
