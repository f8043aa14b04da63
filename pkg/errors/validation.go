package errors

import (
	"unicode"
)

// MaxCategoryNameLength bounds category names accepted from external input.
const MaxCategoryNameLength = 256

// ValidateCategoryName validates a category name arriving from an adapter
// (CSV rows, HTTP requests, interchange documents).
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters (newlines would break DOT and CSV output)
//   - Maximum length of MaxCategoryNameLength bytes
//
// The engine itself accepts any non-empty name; this check only guards the
// outer surfaces.
func ValidateCategoryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "category name cannot be empty")
	}

	if len(name) > MaxCategoryNameLength {
		return New(ErrCodeInvalidInput, "category name too long (max %d characters)", MaxCategoryNameLength)
	}

	blank := true
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "category name contains invalid control characters")
		}
		if !unicode.IsSpace(r) {
			blank = false
		}
	}
	if blank {
		return New(ErrCodeInvalidInput, "category name cannot be blank")
	}

	return nil
}

// ValidateCategoryNames validates every name in names, returning the first
// failure annotated with the offending name.
func ValidateCategoryNames(names []string) error {
	for _, n := range names {
		if err := ValidateCategoryName(n); err != nil {
			return Wrap(ErrCodeInvalidInput, err, "category %q", n)
		}
	}
	return nil
}
