// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrNotExecutable is returned when the resolved path is a directory.
var ErrNotExecutable = errors.New("not an executable file")

// ExpandExecutable expands $VAR, ${VAR} and a leading ~ in executable using
// the "NAME=VALUE" entries of environ. Quotes are kept literally and command
// substitution is rejected.
func ExpandExecutable(executable string, environ []string) (string, error) {
	word, err := syntax.NewParser().Document(strings.NewReader(executable))
	if err != nil {
		return "", err
	}

	env := expand.ListEnviron(environ...)
	out, err := expand.Literal(&expand.Config{Env: env}, word)
	if err != nil {
		return "", err
	}

	if out == "~" || strings.HasPrefix(out, "~/") {
		home := env.Get("HOME").String()
		if home == "" {
			return "", fmt.Errorf("cannot expand ~: HOME is not set")
		}
		out = home + out[1:]
	}
	return out, nil
}

// ResolveExecutable turns an expanded executable into a path. Absolute paths
// are used as-is, relative paths containing a separator are resolved against
// baseDir and bare names are looked up in PATH.
func ResolveExecutable(executable, baseDir string) (string, error) {
	var path string
	switch {
	case filepath.IsAbs(executable):
		path = executable
	case strings.ContainsRune(executable, '/') || strings.ContainsRune(executable, filepath.Separator):
		path = filepath.Join(baseDir, executable)
	default:
		return exec.LookPath(executable)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotExecutable)
	}
	return path, nil
}
