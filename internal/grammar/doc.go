// SPDX-License-Identifier: MPL-2.0

// Package grammar turns a Grammar Tree into a cobra command tree and matches
// argument vectors against it, reporting the raw occurrences of every argument
// along the invoked subcommand path.
package grammar
