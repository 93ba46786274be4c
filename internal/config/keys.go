// SPDX-License-Identifier: MPL-2.0

package config

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Persisted config keys, as they appear in config.json.
const (
	KeyRegistryURL    = "registry_url"
	KeyAllowInsecure  = "allow_insecure"
	KeyNetworkTimeout = "network_timeout"
)

// keyRules holds the validator rule applied when a key is set by name.
var keyRules = map[string]string{
	KeyRegistryURL:    "required,url",
	KeyAllowInsecure:  "",
	KeyNetworkTimeout: "min=1,max=3600",
}

// Keys returns the persisted keys in sorted order.
func Keys() []string {
	return []string{KeyAllowInsecure, KeyNetworkTimeout, KeyRegistryURL}
}

// Get returns the current value of a persisted key as a string.
func (m *Manager) Get(key string) (string, error) {
	cfg := m.Config()
	switch key {
	case KeyRegistryURL:
		return cfg.RegistryURL, nil
	case KeyAllowInsecure:
		return strconv.FormatBool(cfg.AllowInsecure), nil
	case KeyNetworkTimeout:
		return strconv.Itoa(cfg.NetworkTimeout), nil
	default:
		return "", &UnknownKeyError{Key: key}
	}
}

// Set parses and validates value for a persisted key, then applies it through
// the matching setter. Invalid values are rejected before any mutation.
func (m *Manager) Set(key, value string) error {
	switch key {
	case KeyRegistryURL:
		if err := validateKey(key, value); err != nil {
			return err
		}
		return m.SetRegistryURL(value)
	case KeyAllowInsecure:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return &ValidationError{FieldErrors: []error{fieldError(key, "bool", "", value)}}
		}
		return m.SetAllowInsecure(b)
	case KeyNetworkTimeout:
		n, err := parseDecimal(value)
		if err != nil {
			return &ValidationError{FieldErrors: []error{fieldError(key, "int", "", value)}}
		}
		if err := validateKey(key, n); err != nil {
			return err
		}
		return m.SetNetworkTimeout(n)
	default:
		return &UnknownKeyError{Key: key}
	}
}

// parseDecimal reads a base-10 integer. Leading zeros are not an octal prefix
// and 0x/0b forms are rejected.
func parseDecimal(value string) (int, error) {
	digits, negative := strings.CutPrefix(value, "-")
	if err := validatorInstance().Var(digits, "required,number"); err != nil {
		return 0, err
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	n, err := cast.ToIntE(digits)
	if err != nil {
		return 0, err
	}
	if negative {
		n = -n
	}
	return n, nil
}
