package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Add appends a field error
func (e *FieldValidationErrors) Add(field, message string) {
	*e = append(*e, FieldValidationError{Field: field, Message: message})
}

var (
	passwordCharsRegex = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	hasLetter          = regexp.MustCompile(`[A-Za-z]`)
	hasNumber          = regexp.MustCompile(`[0-9]`)
	referralCodeRegex  = regexp.MustCompile(`^[A-F0-9]{8}$`)
	clockRegex         = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	promoCodeRegex     = regexp.MustCompile(`^[A-Z0-9_]+$`)

	registerOnce sync.Once
)

// IsStrongPassword reports whether password has at least 8 characters made
// of letters and digits only, with at least one of each
func IsStrongPassword(password string) bool {
	return passwordCharsRegex.MatchString(password) &&
		hasLetter.MatchString(password) &&
		hasNumber.MatchString(password)
}

// IsReferralCode reports whether code has the referral code format
func IsReferralCode(code string) bool {
	return referralCodeRegex.MatchString(code)
}

// IsClockTime reports whether s is an H:MM or HH:MM time of day
func IsClockTime(s string) bool {
	return clockRegex.MatchString(s)
}

// IsPromoCode reports whether code uses only upper case letters, digits and underscores
func IsPromoCode(code string) bool {
	return promoCodeRegex.MatchString(code)
}

// RegisterValidators installs the custom rules on gin's validator engine
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
			return IsStrongPassword(fl.Field().String())
		})
		_ = v.RegisterValidation("referralcode", func(fl validator.FieldLevel) bool {
			return IsReferralCode(fl.Field().String())
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return IsClockTime(fl.Field().String())
		})
		_ = v.RegisterValidation("promocode", func(fl validator.FieldLevel) bool {
			return IsPromoCode(fl.Field().String())
		})
	})
}

// ValidateStruct runs the binding validator over obj
func ValidateStruct(obj interface{}) error {
	RegisterValidators()
	return binding.Validator.ValidateStruct(obj)
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// FormatValidationErrors converts binding errors into field errors
func FormatValidationErrors(err error) FieldValidationErrors {
	var fieldErrs FieldValidationErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldValidationErrors{{Field: "body", Message: err.Error()}}
	}

	out := make(FieldValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldValidationError{
			Field:   trimNamespace(fe.Namespace()),
			Message: validationMessage(fe),
		})
	}
	return out
}

// ValidationFailed wraps binding errors into a 400 AppError with field details
func ValidationFailed(err error) *AppError {
	return BadRequestError("Validation failed", err).WithDetails(FormatValidationErrors(err))
}

func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "strongpassword":
		return "must be at least 8 characters and contain only letters and numbers, with at least one of each"
	case "referralcode":
		return "must be 8 characters of 0-9 and A-F"
	case "clock":
		return "must be a time in HH:MM format"
	case "promocode":
		return "must contain only uppercase letters, numbers and underscores"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
