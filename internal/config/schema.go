// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"

	"github.com/ambar-lang/amb/pkg/cueutil"

	"cuelang.org/go/cue"
)

//go:embed config_schema.cue
var configSchema string

// maxConfigFileSize bounds how much of a config file is handed to the parser.
const maxConfigFileSize = 1 << 20

// fileValues holds the persisted keys present in a config file. Absent keys
// stay nil.
type fileValues struct {
	RegistryURL    *string
	AllowInsecure  *bool
	NetworkTimeout *int
}

// readFile validates raw config bytes against the #Config definition and
// extracts the persisted keys by their exact names. Keys that differ only in
// case are unknown fields and are ignored.
func readFile(data []byte) (fileValues, error) {
	v, err := cueutil.Check(configSchema, data, "#Config",
		cueutil.WithFilename(ConfigFileName),
		cueutil.WithMaxFileSize(maxConfigFileSize),
	)
	if err != nil {
		return fileValues{}, err
	}

	var fv fileValues
	if f := lookup(v, KeyRegistryURL); f.Exists() {
		s, err := f.String()
		if err != nil {
			return fileValues{}, fmt.Errorf("%s: %w", KeyRegistryURL, err)
		}
		fv.RegistryURL = &s
	}
	if f := lookup(v, KeyAllowInsecure); f.Exists() {
		b, err := f.Bool()
		if err != nil {
			return fileValues{}, fmt.Errorf("%s: %w", KeyAllowInsecure, err)
		}
		fv.AllowInsecure = &b
	}
	if f := lookup(v, KeyNetworkTimeout); f.Exists() {
		n, err := f.Int64()
		if err != nil {
			return fileValues{}, fmt.Errorf("%s: %w", KeyNetworkTimeout, err)
		}
		i := int(n)
		fv.NetworkTimeout = &i
	}
	return fv, nil
}

func lookup(v cue.Value, key string) cue.Value {
	return v.LookupPath(cue.MakePath(cue.Str(key)))
}
