package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class in the scheduling pipeline.
type ErrorCode string

const (
	// ErrCodeExtractionParse indicates the LLM response was not in the expected shape.
	ErrCodeExtractionParse ErrorCode = "EXTRACTION_PARSE_ERROR"
	// ErrCodeExtractionIncomplete indicates a required field is still missing after normalization.
	ErrCodeExtractionIncomplete ErrorCode = "EXTRACTION_INCOMPLETE"
	// ErrCodeSubmissionAccessDenied indicates the calendar backend rejected the request for authorization scope.
	ErrCodeSubmissionAccessDenied ErrorCode = "SUBMISSION_ACCESS_DENIED"
	// ErrCodeSubmissionFailed indicates any other calendar backend failure.
	ErrCodeSubmissionFailed ErrorCode = "SUBMISSION_ERROR"
	// ErrCodeRouterUnhandled is the catch-all for anything escaping the pipeline.
	ErrCodeRouterUnhandled ErrorCode = "ROUTER_UNHANDLED"
)

// PipelineError represents a structured error for the scheduling pipeline.
type PipelineError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Raw holds the upstream payload that caused the failure, kept for diagnostics.
	Raw string
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// WithRaw attaches the raw upstream payload to the error.
func (e *PipelineError) WithRaw(raw string) *PipelineError {
	e.Raw = raw
	return e
}

// New creates a PipelineError with the given code and message.
func New(code ErrorCode, msg string) *PipelineError {
	return &PipelineError{Code: code, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *PipelineError {
	return &PipelineError{Code: code, Message: msg, Cause: cause}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// CodeOf extracts the error code from any error, defaulting to ROUTER_UNHANDLED.
func CodeOf(err error) ErrorCode {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeRouterUnhandled
}

// RawOf extracts the raw upstream payload carried by err, if any.
func RawOf(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Raw
	}
	return ""
}
