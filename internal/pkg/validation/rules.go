package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Phone numbers: digits with optional separators and a leading +.
	PhonePattern = `^\+?[0-9(][0-9\s().-]{5,19}$`

	PasswordMinLength = 6

	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Phone *regexp.Regexp
}{
	Phone: regexp.MustCompile(PhonePattern),
}

// IsValidPhone reports whether the value looks like a dialable phone number.
func IsValidPhone(value string) bool {
	return CompiledPatterns.Phone.MatchString(value)
}

// phoneRule adapts IsValidPhone to the binding validator.
func phoneRule(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

// RegisterCustomValidators attaches the domain rules to Gin's binding
// validator so struct tags can reference them.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phone", phoneRule)
}
