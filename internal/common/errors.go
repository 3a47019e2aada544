package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// APIError represents a standard structure for API errors.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithDetails returns a copy of e carrying details. The package level
// sentinels are shared, so they are never mutated.
func (e *APIError) WithDetails(details interface{}) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

// Is matches API errors by code, so errors.Is(err, ErrNotFound) holds for
// any detailed copy of ErrNotFound.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrBadRequest          = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrUnauthorized        = NewAPIError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required and has failed or has not yet been provided.")
	ErrForbidden           = NewAPIError(http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource.")
	ErrNotFound            = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrConflict            = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	ErrPayloadTooLarge     = NewAPIError(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "The uploaded payload is too large.")
	ErrUnprocessableEntity = NewAPIError(http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "The request was well-formed but was unable to be followed due to semantic errors.")
	ErrTooManyRequests     = NewAPIError(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded.")
	ErrInternalServer      = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")
	ErrServiceUnavailable  = NewAPIError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "The server is currently unable to handle the request.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewValidationAPIError(details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       "VALIDATION_ERROR",
		Message:    "Input validation failed.",
		Details:    details,
	}
}

// BindingError converts an error from ShouldBind* into an APIError,
// expanding validator failures field by field.
func BindingError(err error) *APIError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return NewValidationAPIError(FormatValidationErrors(ve))
	}
	return ErrBadRequest.WithDetails(err.Error())
}

// FormatValidationErrors converts validator.ValidationErrors into a map.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		name := strings.ToLower(field)
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", name)
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", name)
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", name, e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s characters.", name, e.Param())
		case "alphanumdash":
			message = fmt.Sprintf("The %s field may only contain alphanumeric characters and dashes.", name)
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", name, e.Param())
		case "uuid":
			message = fmt.Sprintf("The %s field must be a valid UUID.", name)
		case "gte", "lte":
			message = fmt.Sprintf("The %s field is out of range.", name)
		case "dive":
			message = fmt.Sprintf("The %s field contains an invalid entry.", name)
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[field] = message
	}
	return errorMap
}

// IsUniqueViolation reports whether err was raised by a unique index, on
// PostgreSQL or SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "UNIQUE constraint failed")
}
