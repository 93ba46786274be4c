// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestKeys_Sorted(t *testing.T) {
	t.Parallel()

	keys := Keys()
	if !slices.IsSorted(keys) {
		t.Errorf("Keys() = %v, want sorted", keys)
	}
	if len(keys) != len(keyRules) {
		t.Errorf("Keys() has %d entries, keyRules has %d", len(keys), len(keyRules))
	}
}

func TestManagerGet(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, nil)
	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{KeyAllowInsecure, "false"},
		{KeyNetworkTimeout, "30"},
		{KeyRegistryURL, m.Config().RegistryURL},
	}
	for _, tt := range tests {
		got, err := m.Get(tt.key)
		if err != nil {
			t.Errorf("Get(%q) returned error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	_, err := m.Get("verbose")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get(verbose) should be ErrUnknownKey, got: %v", err)
	}
	if !strings.Contains(err.Error(), "registry_url") {
		t.Errorf("unknown key error should list valid keys: %v", err)
	}
}

func TestManagerSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
		check   func(GlobalConfig) bool
	}{
		{
			name:  "registry url",
			key:   KeyRegistryURL,
			value: "https://registry.ambar.dev",
			check: func(c GlobalConfig) bool { return c.RegistryURL == "https://registry.ambar.dev" },
		},
		{
			name:  "allow insecure",
			key:   KeyAllowInsecure,
			value: "true",
			check: func(c GlobalConfig) bool { return c.AllowInsecure },
		},
		{
			name:  "network timeout",
			key:   KeyNetworkTimeout,
			value: "120",
			check: func(c GlobalConfig) bool { return c.NetworkTimeout == 120 },
		},
		{
			name:  "timeout leading zeros are decimal",
			key:   KeyNetworkTimeout,
			value: "010",
			check: func(c GlobalConfig) bool { return c.NetworkTimeout == 10 },
		},
		{name: "timeout hex", key: KeyNetworkTimeout, value: "0x10", wantErr: ErrInvalidConfig},
		{name: "timeout binary", key: KeyNetworkTimeout, value: "0b11", wantErr: ErrInvalidConfig},
		{name: "timeout negative", key: KeyNetworkTimeout, value: "-5", wantErr: ErrInvalidConfig},
		{name: "timeout sign only", key: KeyNetworkTimeout, value: "-", wantErr: ErrInvalidConfig},
		{name: "bad url", key: KeyRegistryURL, value: "not a url", wantErr: ErrInvalidConfig},
		{name: "empty url", key: KeyRegistryURL, value: "", wantErr: ErrInvalidConfig},
		{name: "bad bool", key: KeyAllowInsecure, value: "maybe", wantErr: ErrInvalidConfig},
		{name: "bad int", key: KeyNetworkTimeout, value: "fast", wantErr: ErrInvalidConfig},
		{name: "timeout zero", key: KeyNetworkTimeout, value: "0", wantErr: ErrInvalidConfig},
		{name: "timeout too large", key: KeyNetworkTimeout, value: "7200", wantErr: ErrInvalidConfig},
		{name: "unknown key", key: "cache_dir", value: "/tmp", wantErr: ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := newTestManager(t, nil)
			if err := m.Initialize(); err != nil {
				t.Fatalf("Initialize() returned error: %v", err)
			}
			before := m.Config()

			err := m.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set(%q, %q) error = %v, want %v", tt.key, tt.value, err, tt.wantErr)
				}
				if m.Config() != before {
					t.Error("rejected Set must not change the configuration")
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q, %q) returned error: %v", tt.key, tt.value, err)
			}
			if !tt.check(m.Config()) {
				t.Errorf("Set(%q, %q) not applied: %+v", tt.key, tt.value, m.Config())
			}
		})
	}
}
