// Package validate checks decoded request payloads against their declared
// schema. Every violation across every field is collected before returning;
// the aggregate detail joins the messages in field declaration order.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"ordersd/internal/domain"

	"github.com/go-playground/validator/v10"
)

type Violation struct {
	Field   string
	Message string
}

type Result struct {
	Violations []Violation
}

func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Detail joins all violation messages with ", ", verbatim and in order.
func (r Result) Detail() string {
	parts := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return strings.Join(parts, ", ")
}

// Err returns nil for a valid result, otherwise a validation ServiceError
// carrying the full violation list.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return domain.Validation(r.Detail())
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// A present-but-blank required string is its own violation, distinct
	// from the field being absent.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v}
}

func (v *Validator) Struct(s any) Result {
	err := v.v.Struct(s)
	if err == nil {
		return Result{}
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Violations: []Violation{{Field: "request", Message: "is not valid"}}}
	}
	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Field:   fe.Field(),
			Message: constraintMessage(fe),
		})
	}
	return Result{Violations: violations}
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "should not be empty"
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("must contain at least %s elements", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("must contain at most %s elements", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid4":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed the %s constraint", fe.Tag())
	}
}

func isCollection(kind reflect.Kind) bool {
	switch kind {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
