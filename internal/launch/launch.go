// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"log/slog"
	"os"

	"github.com/shargs/shargs/pkg/envvar"
)

type (
	// Executor replaces (or, where that is unsupported, runs) a process.
	// It returns only on failure, or with the child's status on platforms
	// without process replacement.
	Executor func(path string, argv, env []string) error

	// Plan is a fully resolved launch.
	Plan struct {
		// Path is the resolved executable path.
		Path string
		// Argv is the argument vector; argv[0] is the expanded executable.
		Argv []string
		// Env holds "NAME=VALUE" entries ordered by name.
		Env []string
	}

	// Launcher prepares and performs launches.
	Launcher struct {
		baseDir string
		inherit Inherit
		environ func() []string
		exec    Executor
	}

	// Option configures a Launcher.
	Option func(*Launcher)
)

// WithBaseDir sets the directory relative executables are resolved against.
func WithBaseDir(dir string) Option {
	return func(l *Launcher) { l.baseDir = dir }
}

// WithInherit sets the host environment inheritance.
func WithInherit(cfg Inherit) Option {
	return func(l *Launcher) { l.inherit = cfg }
}

// WithEnviron replaces os.Environ as the source of host variables.
func WithEnviron(fn func() []string) Option {
	return func(l *Launcher) { l.environ = fn }
}

// WithExecutor replaces the platform executor.
func WithExecutor(fn Executor) Option {
	return func(l *Launcher) { l.exec = fn }
}

// New creates a Launcher. Relative executables resolve against the working
// directory unless WithBaseDir is given.
func New(opts ...Option) *Launcher {
	cwd, _ := os.Getwd()
	l := &Launcher{
		baseDir: cwd,
		inherit: Inherit{Mode: InheritAll},
		environ: os.Environ,
		exec:    platformExec,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prepare expands and resolves executable and builds the process environment.
func (l *Launcher) Prepare(executable string, derived *envvar.Environment) (*Plan, error) {
	host := l.environ()

	expanded, err := ExpandExecutable(executable, host)
	if err != nil {
		return nil, &LaunchError{Executable: executable, Op: "expand", Err: err}
	}
	path, err := ResolveExecutable(expanded, l.baseDir)
	if err != nil {
		return nil, &LaunchError{Executable: executable, Op: "resolve", Err: err}
	}

	return &Plan{
		Path: path,
		Argv: []string{expanded},
		Env:  BuildEnv(l.inherit, host, derived),
	}, nil
}

// Launch performs the plan. On unix it does not return on success.
func (l *Launcher) Launch(plan *Plan) error {
	slog.Debug("launching", "path", plan.Path, "vars", len(plan.Env))
	err := l.exec(plan.Path, plan.Argv, plan.Env)
	if err == nil {
		return nil
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return err
	}
	return &LaunchError{Executable: plan.Argv[0], Op: "exec", Err: err}
}

// Exec prepares and launches executable with the derived variables.
func (l *Launcher) Exec(executable string, derived *envvar.Environment) error {
	plan, err := l.Prepare(executable, derived)
	if err != nil {
		return err
	}
	return l.Launch(plan)
}

// Exec replaces the current process with executable, resolved against the
// working directory, using env as its complete environment.
func Exec(executable string, env []string) error {
	l := New(WithInherit(Inherit{Mode: InheritNone}))
	plan, err := l.Prepare(executable, nil)
	if err != nil {
		return err
	}
	plan.Env = env
	return l.Launch(plan)
}
