// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package launch

import (
	"errors"
	"os"
	"os/exec"
)

// platformExec runs the executable as a child with the current stdio, since
// the platform cannot replace the process image. A non-zero status is
// reported as *ExitCodeError.
func platformExec(path string, argv, env []string) error {
	cmd := exec.Command(path)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitCodeError{Code: ExitCode(exitErr.ExitCode())}
	}
	return err
}
