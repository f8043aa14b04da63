package errors

import (
	"strings"
	"testing"
)

func TestValidateCategoryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Animal", false},
		{"valid with space", "Black Dog", false},
		{"valid with dash", "Has-colour", false},
		{"valid unicode", "Säugetier", false},
		{"valid root symbol", "*", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", MaxCategoryNameLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategoryName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCategoryName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateCategoryName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateCategoryNames(t *testing.T) {
	if err := ValidateCategoryNames([]string{"A", "B"}); err != nil {
		t.Errorf("ValidateCategoryNames() error = %v, want nil", err)
	}

	err := ValidateCategoryNames([]string{"A", ""})
	if err == nil {
		t.Fatal("ValidateCategoryNames() error = nil, want error")
	}
	if !Is(err, ErrCodeInvalidInput) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
}
