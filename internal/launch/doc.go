// SPDX-License-Identifier: MPL-2.0

// Package launch resolves the leaf executable, builds the process
// environment from the host environment and the derived variables, and
// replaces the current process with the executable.
package launch
