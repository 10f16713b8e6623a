// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Unify performs the CUE validation flow on CUE source:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate the unified value
//
// The unified value is returned so callers can decode it.
func Unify(schema, data []byte, schemaPath string, opts ...Option) (cue.Value, error) {
	options := applyOptions(opts)

	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()
	root, err := compileSchema(ctx, schema, schemaPath)
	if err != nil {
		return cue.Value{}, err
	}

	userValue := ctx.CompileBytes(data, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), options.filename)
	}

	return validate(root.Unify(userValue), options)
}

// ValidateGo encodes a decoded Go value into CUE and validates it against
// the schema definition at schemaPath.
func ValidateGo(schema []byte, schemaPath string, value any, opts ...Option) error {
	options := applyOptions(opts)

	ctx := cuecontext.New()
	root, err := compileSchema(ctx, schema, schemaPath)
	if err != nil {
		return err
	}

	encoded := ctx.Encode(value)
	if encoded.Err() != nil {
		return FormatError(encoded.Err(), options.filename)
	}

	_, err = validate(root.Unify(encoded), options)
	return err
}

// ToGeneric converts a concrete CUE value into the generic tree produced by
// encoding/json (map[string]any, []any, string, float64, bool, nil).
func ToGeneric(v cue.Value, filename string) (any, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, FormatError(err, filename)
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return out, nil
}

func applyOptions(opts []Option) parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func compileSchema(ctx *cue.Context, schema []byte, schemaPath string) (cue.Value, error) {
	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}
	return root, nil
}

func validate(unified cue.Value, options parseOptions) (cue.Value, error) {
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, FormatError(err, options.filename)
	}
	return unified, nil
}
