// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks JSON and CUE documents against embedded CUE schemas.
//
// Both ambar.json and the global config.json go through the same flow:
//
//  1. Compile the embedded schema
//  2. Compile the user data and unify it with a schema definition
//  3. Validate, then optionally decode into a Go struct
//
// JSON is a subset of CUE, so JSON documents compile without conversion.
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schema string
//
//	m, err := cueutil.Decode[Manifest](schema, data, "#Manifest",
//	    cueutil.WithFilename("ambar.json"))
//	if err != nil {
//	    return err // names the offending field, e.g. dependencies.math
//	}
package cueutil
