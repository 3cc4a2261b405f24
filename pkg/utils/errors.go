package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

func NewConflictError(message, detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusConflict,
		Message: message,
		Detail:  detail,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

func NewLLMError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Extraction service failed",
		Detail:  detail,
	}
}

func NewParseError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Extraction output could not be parsed",
		Detail:  detail,
	}
}

func NewOCRError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "OCR failed",
		Detail:  detail,
	}
}

// ExtractionServiceError means the collaborator was unreachable, timed out or
// answered non-2xx. Callers may retry.
type ExtractionServiceError struct {
	Provider string
	Cause    error
}

func (e *ExtractionServiceError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("extraction service %s: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("extraction service: %v", e.Cause)
}

func (e *ExtractionServiceError) Unwrap() error { return e.Cause }

func (e *ExtractionServiceError) Retryable() bool { return true }

// ExtractionParseError means the collaborator answered but not with a usable
// JSON object. Retrying the same prompt is not expected to help.
type ExtractionParseError struct {
	Reason  string
	Snippet string
	Cause   error
}

func (e *ExtractionParseError) Error() string {
	msg := "extraction parse: " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExtractionParseError) Unwrap() error { return e.Cause }

func (e *ExtractionParseError) Retryable() bool { return false }

// ValidationInputError is part of the taxonomy for callers that want to
// reject input outright. The validator itself scores bad input instead.
type ValidationInputError struct {
	Field  string
	Reason string
}

func (e *ValidationInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// IsRetryable reports whether err, or anything it wraps, is marked retryable
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// ToCustomError maps domain errors onto transport errors
func ToCustomError(err error) *CustomError {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom
	}
	var svc *ExtractionServiceError
	if errors.As(err, &svc) {
		return NewLLMError(svc.Error())
	}
	var parse *ExtractionParseError
	if errors.As(err, &parse) {
		return NewParseError(parse.Error())
	}
	var input *ValidationInputError
	if errors.As(err, &input) {
		return NewValidationError(input.Error())
	}
	return NewInternalServerError(err.Error())
}
