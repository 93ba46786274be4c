// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type (
	// rootOverlay holds AMBAR_HOME. It is parsed on its own so a malformed
	// value override elsewhere never moves the ambar root.
	rootOverlay struct {
		Home *string `env:"AMBAR_HOME"`
	}

	// envOverlay mirrors the remaining AMBAR_* variables. Pointer fields stay
	// nil when a variable is unset, so only variables that are present
	// override.
	envOverlay struct {
		RegistryURL    *string `env:"AMBAR_REGISTRY_URL"`
		RegistryAPIKey *string `env:"AMBAR_REGISTRY_API_KEY"`
		NetworkTimeout *int    `env:"AMBAR_NETWORK_TIMEOUT"`
		MaxRetries     *int    `env:"AMBAR_MAX_RETRIES"`
		AllowInsecure  *bool   `env:"AMBAR_ALLOW_INSECURE"`
		VerifySSL      *bool   `env:"AMBAR_VERIFY_SSL"`
		AutoUpdate     *bool   `env:"AMBAR_AUTO_UPDATE"`
		Verbose        *bool   `env:"AMBAR_VERBOSE"`
		Color          *bool   `env:"AMBAR_COLOR"`
	}
)

// parseEnv reads both overlays from environ, or from the process environment
// when environ is nil. An error concerns the value overlay only; the root
// overlay is returned either way.
func parseEnv(environ map[string]string) (rootOverlay, envOverlay, error) {
	opts := env.Options{Environment: environ}

	var root rootOverlay
	if err := env.ParseWithOptions(&root, opts); err != nil {
		return rootOverlay{}, envOverlay{}, fmt.Errorf("parse env: %w", err)
	}

	var o envOverlay
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return root, envOverlay{}, fmt.Errorf("parse env: %w", err)
	}
	return root, o, nil
}

// applyValues copies every override onto cfg.
func (o envOverlay) applyValues(cfg *GlobalConfig) {
	if o.RegistryURL != nil {
		cfg.RegistryURL = *o.RegistryURL
	}
	if o.RegistryAPIKey != nil {
		cfg.RegistryAPIKey = *o.RegistryAPIKey
	}
	if o.NetworkTimeout != nil {
		cfg.NetworkTimeout = *o.NetworkTimeout
	}
	if o.MaxRetries != nil {
		cfg.MaxRetries = *o.MaxRetries
	}
	if o.AllowInsecure != nil {
		cfg.AllowInsecure = *o.AllowInsecure
	}
	if o.VerifySSL != nil {
		cfg.VerifySSL = *o.VerifySSL
	}
	if o.AutoUpdate != nil {
		cfg.AutoUpdate = *o.AutoUpdate
	}
	if o.Verbose != nil {
		cfg.Verbose = *o.Verbose
	}
	if o.Color != nil {
		cfg.ColorOutput = *o.Color
	}
}
