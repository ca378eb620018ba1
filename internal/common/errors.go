// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a standard structure for API errors.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"error"`
	Details    interface{} `json:"details,omitempty"`
	// PlainText responses write Message as text/plain instead of JSON.
	PlainText bool `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

// Is matches API errors by code, so copies made by WithDetails still satisfy errors.Is.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithDetails returns a copy of e carrying details. The receiver is left untouched.
func (e *APIError) WithDetails(details interface{}) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of e with a different caller-facing message.
func (e *APIError) WithMessage(message string) *APIError {
	cp := *e
	cp.Message = message
	return &cp
}

var (
	ErrBadRequest       = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrValidation       = NewAPIError(http.StatusBadRequest, "VALIDATION_ERROR", "Validation error")
	ErrUnauthorized     = &APIError{StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Unauthorized", PlainText: true}
	ErrNotFound         = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrMethodNotAllowed = NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL.")
	ErrConflict         = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	ErrInternalServer   = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewValidationAPIError wraps field-level validation failures as a 400 response.
func NewValidationAPIError(details interface{}) *APIError {
	return ErrValidation.WithDetails(details)
}
