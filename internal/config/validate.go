// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator. Field names in errors are
// reported by their config key instead of the Go field name.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if k := f.Tag.Get("key"); k != "" {
				return k
			}
			return f.Name
		})
	})
	return validate
}

// Validate checks the semantic rules of a configuration.
func (c GlobalConfig) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{FieldErrors: []error{err}}
	}

	fieldErrs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, fieldError(fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return &ValidationError{FieldErrors: fieldErrs}
}

// fieldError renders a validator failure in config-key terms.
func fieldError(key, tag, param string, value any) error {
	switch tag {
	case "required":
		return fmt.Errorf("%s: must not be empty", key)
	case "url":
		return fmt.Errorf("%s: %q is not a valid URL", key, value)
	case "min":
		return fmt.Errorf("%s: must be at least %s (got %v)", key, param, value)
	case "max":
		return fmt.Errorf("%s: must be at most %s (got %v)", key, param, value)
	case "bool":
		return fmt.Errorf("%s: %q is not a boolean", key, value)
	case "int":
		return fmt.Errorf("%s: %q is not an integer", key, value)
	default:
		return fmt.Errorf("%s: failed %q check", key, tag)
	}
}

// validateKey checks a single persisted value against the rule of its field.
func validateKey(key string, value any) error {
	rule, ok := keyRules[key]
	if !ok || rule == "" {
		return nil
	}
	err := validatorInstance().Var(value, rule)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{FieldErrors: []error{fieldError(key, fe.Tag(), fe.Param(), fe.Value())}}
	}
	return &ValidationError{FieldErrors: []error{err}}
}
