// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig is the sentinel error wrapped by ConfigError.
	ErrConfig = errors.New("configuration error")
	// ErrDirectory is the sentinel error wrapped by DirectoryError.
	ErrDirectory = errors.New("directory error")
	// ErrInvalidConfig is the sentinel error wrapped by ValidationError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownKey is the sentinel error wrapped by UnknownKeyError.
	ErrUnknownKey = errors.New("unknown config key")
)

type (
	// ConfigError reports an unreadable, unparseable or unwritable config file.
	// It is never fatal: the manager keeps its previous state.
	ConfigError struct {
		Op   string
		Path string
		Err  error
	}

	// DirectoryError reports a managed directory that could not be created.
	// It is fatal to initialization.
	DirectoryError struct {
		Path string
		Err  error
	}

	// ValidationError collects field-level validation failures.
	ValidationError struct {
		FieldErrors []error
	}

	// UnknownKeyError is returned by Get and Set for keys outside the
	// persisted set.
	UnknownKeyError struct {
		Key string
	}
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns both the sentinel and the cause.
func (e *ConfigError) Unwrap() []error { return []error{ErrConfig, e.Err} }

// Error implements the error interface.
func (e *DirectoryError) Error() string {
	return fmt.Sprintf("create directory %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the cause.
func (e *DirectoryError) Unwrap() []error { return []error{ErrDirectory, e.Err} }

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q (valid keys: %s)", e.Key, strings.Join(Keys(), ", "))
}

// Unwrap returns ErrUnknownKey for errors.Is() compatibility.
func (e *UnknownKeyError) Unwrap() error { return ErrUnknownKey }
