// Package validation binds request data and turns validation failures into
// field-level 400 responses.
//
// Payload types carry validator tags and implement Validatable; the handler
// pipeline calls BindAndValidate before any business logic runs.
package validation

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/memorialize/memorial-backend/internal/errs"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payloads.
//
// Validate returns validator.ValidationErrors, CustomValidationErrors, or nil.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a field problem that a struct tag cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path params, query string and body into payload,
// then validates it. payload must be a pointer to a struct.
//
// A missing required field yields the MISSING_REQUIRED_FIELDS error with one
// entry per field. Malformed input (bad JSON, a non-numeric id) yields a
// plain 400 carrying Echo's bind message.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return validationHTTPError(err)
	}

	return nil
}

func bindErrorMessage(err error) string {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		msg, _ := bindErr.Message.(string)
		if bindErr.Field != "" {
			return fmt.Sprintf("%s: %s", bindErr.Field, msg)
		}
		if msg != "" {
			return msg
		}
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(echoErr.Code)
	}

	return "Invalid request"
}

func validationHTTPError(err error) *errs.HTTPError {
	fieldErrors := extractFieldErrors(err)

	if len(fieldErrors) > 0 && allRequired(err) {
		return errs.NewMissingFieldsError(fieldErrors)
	}

	if fieldErrors == nil {
		return errs.ValidationError(err)
	}

	return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
}

// allRequired reports whether every tag failure is a missing value.
func allRequired(err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	for _, fe := range validationErrors {
		if fe.Tag() != "required" {
			return false
		}
	}
	return true
}

func extractFieldErrors(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldErrorMessage(fe),
		})
	}

	return fieldErrors
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}
