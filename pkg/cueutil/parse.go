// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Check unifies data with the definition at defPath in schema and validates
// the result. The unified value is returned for callers that need more than
// a pass/fail answer.
func Check(schema string, data []byte, defPath string, opts ...Option) (cue.Value, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath(defPath))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, def.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), o.filename)
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}

// Decode runs Check and decodes the unified value into a T.
func Decode[T any](schema string, data []byte, defPath string, opts ...Option) (T, error) {
	var result T

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	unified, err := Check(schema, data, defPath, opts...)
	if err != nil {
		return result, err
	}
	if err := unified.Decode(&result); err != nil {
		return result, FormatError(err, o.filename)
	}
	return result, nil
}
