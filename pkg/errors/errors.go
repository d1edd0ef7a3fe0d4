// Package errors carries API errors: a stable code, an HTTP status and a
// client-safe message, with the underlying cause kept for logs.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Codes returned in the "code" field of error responses
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeTimeout            = "TIMEOUT"
)

// AppError is an error that knows how it is rendered to API clients
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetails replaces the details map
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// Wrap records the cause. It is logged but never sent to clients.
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func NewAppError(code string, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func ErrValidation(message string) *AppError {
	return NewAppError(CodeValidationError, message, http.StatusBadRequest)
}

// ErrValidationWithFields reports per-field problems in Details
func ErrValidationWithFields(message string, fields map[string]string) *AppError {
	return ErrValidation(message).WithDetails(fields)
}

// ErrBadRequest is for requests that could not be read at all
func ErrBadRequest(message string) *AppError {
	return NewAppError(CodeBadRequest, message, http.StatusBadRequest)
}

func ErrRateLimitExceeded() *AppError {
	return NewAppError(CodeRateLimitExceeded, "rate limit exceeded", http.StatusTooManyRequests)
}

// ErrInternal hides the cause behind a generic message when message is empty
func ErrInternal(message string) *AppError {
	if message == "" {
		message = "an internal error occurred"
	}
	return NewAppError(CodeInternalError, message, http.StatusInternalServerError)
}

// ErrServiceUnavailable names the dependency that could not be reached
func ErrServiceUnavailable(dependency string) *AppError {
	return NewAppError(CodeServiceUnavailable, dependency+" is temporarily unavailable", http.StatusServiceUnavailable)
}

// AsAppError finds an AppError anywhere in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// DomainMapping maps errors matching Target, as reported by errors.Is, to an
// AppError with Code and HTTPStatus. The AppError message is the error text.
type DomainMapping struct {
	Target     error
	Code       string
	HTTPStatus int
}

// MapDomainError converts err to an AppError. AppErrors pass through, the first
// matching mapping wins, deadlines become timeouts and anything else is internal.
func MapDomainError(err error, mappings ...DomainMapping) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	for _, m := range mappings {
		if errors.Is(err, m.Target) {
			return NewAppError(m.Code, err.Error(), m.HTTPStatus).Wrap(err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewAppError(CodeTimeout, "operation timed out", http.StatusGatewayTimeout).Wrap(err)
	}
	return ErrInternal("").Wrap(err)
}
