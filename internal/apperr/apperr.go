package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a caller-visible failure class.
type Code string

const (
	CodeInvalidTransition     Code = "invalid_transition"
	CodeInvalidTaskTransition Code = "invalid_task_transition"
	CodeOfficerUnavailable    Code = "officer_unavailable"
	CodeReportNotAssignable   Code = "report_not_assignable"
	CodeNotFound              Code = "not_found"
	CodeValidation            Code = "validation_error"
)

// Error is a coded, caller-visible error. The message always carries the
// specific reason for the rejection (current status, conflicting ids).
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a coded error with a formatted message.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from err, or "" if err is not a coded error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
