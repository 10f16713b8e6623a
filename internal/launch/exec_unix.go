// SPDX-License-Identifier: MPL-2.0

//go:build unix

package launch

import "golang.org/x/sys/unix"

// platformExec replaces the process image. It only returns on failure.
func platformExec(path string, argv, env []string) error {
	return unix.Exec(path, argv, env)
}
