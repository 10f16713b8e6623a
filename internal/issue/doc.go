// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors that carry the failed operation,
// the resource involved and remediation hints, plus a catalog of Markdown
// help pages rendered with glamour.
package issue
