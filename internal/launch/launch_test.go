// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shargs/shargs/internal/testutil"
	"github.com/shargs/shargs/pkg/envvar"
)

type recordedExec struct {
	path string
	argv []string
	env  []string
}

func recordingExecutor(rec *recordedExec, ret error) Executor {
	return func(path string, argv, env []string) error {
		rec.path, rec.argv, rec.env = path, argv, env
		return ret
	}
}

func TestLauncher_Exec(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "bin", "leaf")
	testutil.MustMkdirAll(t, filepath.Dir(script), 0o755)
	testutil.MustWriteFile(t, script, "#!/bin/sh\n", 0o755)

	derived := envvar.NewEnvironment()
	derived.Set("COUNT", "1,2")
	derived.Set("KEEP", "derived")

	var rec recordedExec
	l := New(
		WithBaseDir(dir),
		WithInherit(Inherit{Mode: InheritAll, Deny: []string{"DROP"}}),
		WithEnviron(func() []string { return []string{"KEEP=host", "DROP=x", "BIN=bin"} }),
		WithExecutor(recordingExecutor(&rec, nil)),
	)

	if err := l.Exec("./$BIN/leaf", derived); err != nil {
		t.Fatalf("Exec() error: %v", err)
	}

	want := recordedExec{
		path: script,
		argv: []string{"./bin/leaf"},
		env:  []string{"BIN=bin", "COUNT=1,2", "KEEP=derived"},
	}
	if diff := cmp.Diff(want, rec, cmp.AllowUnexported(recordedExec{})); diff != "" {
		t.Errorf("executor call mismatch (-want +got):\n%s", diff)
	}
}

func TestLauncher_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "leaf"), "#!/bin/sh\n", 0o755)
	execFailure := errors.New("exec format error")

	tests := []struct {
		name       string
		executable string
		execErr    error
		wantOp     string
		wantCode   ExitCode
	}{
		{name: "missing file", executable: "./nope", wantOp: "resolve"},
		{name: "bad expansion", executable: "$(false)", wantOp: "expand"},
		{name: "exec failure", executable: "./leaf", execErr: execFailure, wantOp: "exec"},
		{name: "child exit status", executable: "./leaf", execErr: &ExitCodeError{Code: 3}, wantCode: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var rec recordedExec
			l := New(
				WithBaseDir(dir),
				WithEnviron(func() []string { return nil }),
				WithExecutor(recordingExecutor(&rec, tt.execErr)),
			)

			err := l.Exec(tt.executable, nil)
			if tt.wantCode != 0 {
				var ec *ExitCodeError
				if !errors.As(err, &ec) || ec.Code != tt.wantCode {
					t.Fatalf("Exec() error = %v, want exit code %d", err, tt.wantCode)
				}
				return
			}

			if !errors.Is(err, ErrLaunch) {
				t.Fatalf("Exec() error = %v, want ErrLaunch", err)
			}
			var le *LaunchError
			if !errors.As(err, &le) {
				t.Fatalf("error should be *LaunchError, got %T", err)
			}
			if le.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", le.Op, tt.wantOp)
			}
			if tt.execErr != nil && !errors.Is(err, tt.execErr) {
				t.Errorf("error should wrap the executor error, got %v", err)
			}
		})
	}
}

func TestExitCode_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range []ExitCode{0, 1, 255} {
		if ok, _ := c.IsValid(); !ok {
			t.Errorf("ExitCode(%d).IsValid() = false", c)
		}
	}
	for _, c := range []ExitCode{-1, 256} {
		ok, errs := c.IsValid()
		if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidExitCode) {
			t.Errorf("ExitCode(%d).IsValid() = %v, %v", c, ok, errs)
		}
	}
}
