package contextutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	return validate
}

// IsValidKey reports whether s is usable as a level key or daily identifier:
// non-empty printable ASCII without whitespace or ':', at most 64 characters.
// ':' separates the parts of store keys.
func IsValidKey(s string) bool {
	return validate.Var(s, "required,max=64,printascii,excludesall= :") == nil
}

// ValidateStruct runs struct-tag validation and wraps failures as VALIDATION_FAILED
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return NewAppErrorWithCause(ErrorCodeValidationFailed, SeverityWarn, ErrValidationFailed.Message, err.Error(), err)
	}
	return nil
}
