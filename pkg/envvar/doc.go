// SPDX-License-Identifier: MPL-2.0

// Package envvar turns matched command-line arguments into environment variables.
//
// It holds the three leaf pieces of the argument-to-environment pipeline:
// name derivation (Transliterate), value encoding (Spec and Encode), and the
// ordered, copy-on-write Environment that accumulates assignments while a
// command path is walked from the root to the reached leaf.
package envvar
