package server

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var parcelNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// requestValidator wraps go-playground/validator with readable messages.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("parcelnumber", func(fl validator.FieldLevel) bool {
		return parcelNumberPattern.MatchString(fl.Field().String())
	})
	return &requestValidator{v: v}
}

// Validate checks i against its struct tags.
func (rv *requestValidator) Validate(i any) error {
	if err := rv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single validation failure into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "alpha":
		return field + " must contain only letters"
	case "parcelnumber":
		return field + " must contain only letters, digits and dashes"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
