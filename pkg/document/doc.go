// SPDX-License-Identifier: MPL-2.0

// Package document loads a shargs document and splits it into two trees.
//
// A document describes a command-line grammar (commands, subcommands, flags,
// positional arguments) together with runtime instructions (the executable of
// each leaf command and how each argument becomes an environment variable).
// Split partitions the generic document tree into a Grammar Tree, decoded to
// CommandNode, and a Runtime Tree of RuntimeNode. Every argument and every
// subcommand is emitted into both trees, so the two always have the same shape.
//
// Documents may be written as JSON, YAML, TOML or CUE. All formats are decoded
// into the same generic tree and validated against the embedded CUE schema
// (document_schema.cue) before splitting.
package document
