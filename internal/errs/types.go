package errs

import (
	"net/http"
)

// Codes shared by the store error mapping and the service layer, so a client
// sees the same code whether a problem was caught before or by the database.
const (
	CodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	CodeInvalidDataFormat     = "INVALID_DATA_FORMAT"
)

const (
	MessageMissingRequiredFields = "Missing required fields."
	MessageInvalidDataFormat     = "Invalid data format. Ensure dates are YYYY-MM-DD."
)

// NewBadRequestError creates a 400 HTTPError.
//
// code defaults to "BAD_REQUEST" when nil; errors and action are optional.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 HTTPError. code defaults to "NOT_FOUND".
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a generic 500. The real cause is logged,
// never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewMissingFieldsError reports absent required input, optionally naming the fields.
func NewMissingFieldsError(fieldErrors []FieldError) *HTTPError {
	code := CodeMissingRequiredFields
	return NewBadRequestError(MessageMissingRequiredFields, true, &code, fieldErrors, nil)
}

// NewInvalidFormatError reports a value the store could not parse, typically a date.
func NewInvalidFormatError(fieldErrors []FieldError) *HTTPError {
	code := CodeInvalidDataFormat
	return NewBadRequestError(MessageInvalidDataFormat, true, &code, fieldErrors, nil)
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
