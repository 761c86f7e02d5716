package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	CodeNotFound     = "ERR_NOT_FOUND"
	CodeBadRequest   = "ERR_BAD_REQUEST"
	CodeValidation   = "ERR_VALIDATION"
	CodeConflict     = "ERR_CONFLICT"
	CodeUnauthorized = "ERR_UNAUTHORIZED"
	CodeTooMany      = "ERR_TOO_MANY_REQUESTS"
	CodeInternal     = "ERR_INTERNAL"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Details []ValidationError      `json:"details,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if len(e.Details) > 0 {
		msgs := make([]string, len(e.Details))
		for i, d := range e.Details {
			msgs[i] = d.Message
		}
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(msgs, "; "))
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new application error.
func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Status:  status,
	}
}

// WithParam sets a single error param.
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// WithField names the offending input field.
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func NotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, "", message, http.StatusNotFound)
}

func NotFoundErrorf(format string, a ...interface{}) *AppError {
	return NotFoundError(fmt.Sprintf(format, a...))
}

func BadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, "", message, http.StatusBadRequest)
}

func BadRequestErrorf(format string, a ...interface{}) *AppError {
	return BadRequestError(fmt.Sprintf(format, a...))
}

// FieldError is a 400 tied to one input field.
func FieldError(field, message string) *AppError {
	return NewAppError(CodeValidation, field, message, http.StatusBadRequest)
}

// ValidationFailed groups several field failures under one 400.
func ValidationFailed(message string, details ...ValidationError) *AppError {
	e := NewAppError(CodeValidation, "", message, http.StatusBadRequest)
	e.Details = details
	return e
}

func ConflictError(message string) *AppError {
	return NewAppError(CodeConflict, "", message, http.StatusConflict)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(CodeUnauthorized, "", message, http.StatusUnauthorized)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(CodeTooMany, "", message, http.StatusTooManyRequests)
}

func InternalError(message string) *AppError {
	return NewAppError(CodeInternal, "", message, http.StatusInternalServerError)
}

func InternalErrorf(format string, a ...interface{}) *AppError {
	return InternalError(fmt.Sprintf(format, a...))
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
