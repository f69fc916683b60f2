// Package jsonutil provides JSON output helpers for the focal CLI.
//
// These back the CLI's JSON output paths; nothing here decides
// structure, only presentation.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// MustMarshalIndent marshals a value to indented JSON, panicking on error.
// Use only for values known to be marshalable (maps, slices, plain structs).
func MustMarshalIndent(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("jsonutil.MustMarshalIndent: %v", err))
	}
	return string(b)
}

// MustMarshalCompact marshals a value to single-line JSON, panicking on
// error. Used for --compact output meant for piping into other tools.
func MustMarshalCompact(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("jsonutil.MustMarshalCompact: %v", err))
	}
	return string(b)
}
