// SPDX-License-Identifier: MPL-2.0

// Package walker co-walks the Grammar Tree, the Runtime Tree and a Match,
// following the invoked subcommand path and accumulating the environment
// handed to the leaf executable.
package walker
