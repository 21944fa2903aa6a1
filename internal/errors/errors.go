// Package errors holds the user-facing errors coremeter reports before
// exiting. Each one says what went wrong, the underlying cause if any,
// and what the user can do about it.
package errors

import (
	"errors"
	"strings"
)

// Code groups errors by the subsystem that raised them.
type Code string

const (
	ErrConfig   Code = "CONFIG"
	ErrSampler  Code = "SAMPLER"
	ErrTerminal Code = "TERMINAL"
	ErrLogging  Code = "LOGGING"
)

// Error is printed as a marked headline followed by indented cause and
// hint paragraphs; empty parts are left out.
type Error struct {
	Code       Code
	Message    string
	Suggestion string
	Cause      error
}

func New(code Code, message, suggestion string) *Error {
	return WrapWithCode(nil, code, message, suggestion)
}

// WrapWithCode attaches a headline and hint to err, which may be nil.
func WrapWithCode(err error, code Code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("✗ " + e.Message + "\n")

	paragraphs := []string{e.Suggestion}
	if e.Cause != nil {
		paragraphs = []string{e.Cause.Error(), e.Suggestion}
	}
	for _, p := range paragraphs {
		if p != "" {
			b.WriteString("\n  " + p + "\n")
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// IsCode reports whether err or anything it wraps is an *Error with code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
