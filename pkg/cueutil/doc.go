// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE validation utilities.
//
// Documents and configuration files are checked against embedded CUE schemas
// before they are used. Two entry points cover the two input paths:
//
//   - Unify compiles CUE source (JSON is valid CUE), unifies it with a schema
//     definition and validates the result.
//   - ValidateGo encodes an already-decoded Go value (from YAML, TOML or JSON)
//     into CUE and validates it against the same definition.
//
// # Usage
//
//	//go:embed document_schema.cue
//	var schemaBytes []byte
//
//	if err := cueutil.ValidateGo(schemaBytes, "#Document", tree,
//	    cueutil.WithFilename("cli.yaml")); err != nil {
//	    return err // includes the JSON path of the offending field
//	}
package cueutil
