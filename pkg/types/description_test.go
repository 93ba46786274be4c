// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestDescriptionText_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desc    DescriptionText
		want    bool
		wantErr bool
	}{
		{"simple text", DescriptionText("Install packages"), true, false},
		{"empty is valid (zero value)", DescriptionText(""), true, false},
		{"whitespace only is invalid", DescriptionText("   "), false, true},
		{"tab only is invalid", DescriptionText("\t"), false, true},
		{"multiline is invalid", DescriptionText("Line 1\nLine 2"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.desc.IsValid()
			if isValid != tt.want {
				t.Errorf("DescriptionText(%q).IsValid() = %v, want %v", tt.desc, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("DescriptionText(%q).IsValid() returned no errors, want error", tt.desc)
				}
				if !errors.Is(errs[0], ErrInvalidDescriptionText) {
					t.Errorf("error should wrap ErrInvalidDescriptionText, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("DescriptionText(%q).IsValid() returned unexpected errors: %v", tt.desc, errs)
			}
		})
	}
}
