// Package errors provides structured error types and response helpers for the
// console API.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/galaxyops/hub-console/internal/hub"
)

// Error codes for structured API responses.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeConflict        = "CONFLICT"
	CodeUpstreamError   = "UPSTREAM_ERROR"
)

// APIError represents a structured API error response.
type APIError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`

	status int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetails returns a copy of the error with additional details.
func (e *APIError) WithDetails(details map[string]any) *APIError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithRequestID returns a copy of the error with the request ID set.
func (e *APIError) WithRequestID(requestID string) *APIError {
	clone := *e
	clone.RequestID = requestID
	return &clone
}

// New creates a new APIError with the given code and message.
func New(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *APIError {
	return New(CodeValidationError, message)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *APIError {
	return New(CodeNotFound, message)
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *APIError {
	return New(CodeUnauthorized, message)
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(message string) *APIError {
	return New(CodeForbidden, message)
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *APIError {
	return New(CodeInternalError, message)
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *APIError {
	return New(CodeConflict, message)
}

// FromHub converts an upstream hub API failure into a console APIError.
// Hub field errors are preserved in Details so the frontend can attach them
// to form fields. Transport failures without a response become upstream
// errors with the raw error text.
func FromHub(err error) *APIError {
	var hubErr *hub.APIError
	if !errors.As(err, &hubErr) {
		return &APIError{
			Code:    CodeUpstreamError,
			Message: err.Error(),
			status:  http.StatusBadGateway,
		}
	}

	apiErr := &APIError{
		Code:    CodeUpstreamError,
		Message: hubErr.Error(),
		status:  http.StatusBadGateway,
	}
	switch hubErr.StatusCode {
	case http.StatusBadRequest:
		apiErr.Code = CodeValidationError
		apiErr.status = http.StatusBadRequest
	case http.StatusUnauthorized:
		apiErr.Code = CodeUnauthorized
		apiErr.status = http.StatusUnauthorized
	case http.StatusForbidden:
		apiErr.Code = CodeForbidden
		apiErr.status = http.StatusForbidden
	case http.StatusNotFound:
		apiErr.Code = CodeNotFound
		apiErr.status = http.StatusNotFound
	case http.StatusConflict:
		apiErr.Code = CodeConflict
		apiErr.status = http.StatusConflict
	}
	if len(hubErr.Fields) > 0 {
		details := make(map[string]any, len(hubErr.Fields))
		for field, messages := range hubErr.Fields {
			details[field] = messages
		}
		apiErr.Details = details
	}
	return apiErr
}

// HTTPStatusCode returns the appropriate HTTP status code for the error.
func (e *APIError) HTTPStatusCode() int {
	if e.status != 0 {
		return e.status
	}
	switch e.Code {
	case CodeValidationError:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeUpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an APIError as a JSON response.
func WriteError(w http.ResponseWriter, err *APIError) {
	WriteJSON(w, err.HTTPStatusCode(), err)
}

// WriteErrorWithRequestID writes an APIError with the request ID set.
func WriteErrorWithRequestID(w http.ResponseWriter, err *APIError, requestID string) {
	WriteError(w, err.WithRequestID(requestID))
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of field-level validation errors.
type ValidationErrors []ValidationError

// Add adds a new validation error for a field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// HasErrors returns true when any validation error was recorded.
func (v ValidationErrors) HasErrors() bool { return len(v) > 0 }

// ToAPIError converts validation errors into a single APIError.
func (v ValidationErrors) ToAPIError() *APIError {
	details := make(map[string]any, len(v))
	for _, e := range v {
		details[e.Field] = e.Message
	}
	return NewValidationError("request validation failed").WithDetails(details)
}
