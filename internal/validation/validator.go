// Package validation turns go-playground/validator struct tags into
// field-level ValidationErrors. It also satisfies echo.Validator.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "aiproxy/internal/domain/errors"
	"aiproxy/internal/errors"
)

// Validator validates DTOs tagged with `validate` and, optionally, `label`
// (the human name used in messages; defaults to the JSON field name).
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate checks i and returns a *domainerrors.ValidationError listing
// every failing field, or nil.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate input")
	}

	typ := reflect.TypeOf(i)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	violations := make([]domainerrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   fe.Field(),
			Message: message(labelOf(typ, fe), fe),
		})
	}

	return domainerrors.NewValidationError(violations...)
}

func labelOf(typ reflect.Type, fe validator.FieldError) string {
	if typ.Kind() == reflect.Struct {
		if sf, ok := typ.FieldByName(fe.StructField()); ok {
			if label := sf.Tag.Get("label"); label != "" {
				return label
			}
		}
	}

	return fe.Field()
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email address"
	case "max":
		return label + " cannot exceed " + fe.Param() + " characters"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	default:
		return label + " is invalid"
	}
}
