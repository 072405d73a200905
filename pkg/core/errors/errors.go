// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     errors
// Description: Typed error codes for the Cicero error taxonomy
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package errors

import (
	"errors"
	"fmt"
	"time"
)

// Code identifies an error category within the service taxonomy
type Code string

const (
	CodeUnknown             Code = "UNKNOWN"
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeEmptyText           Code = "EMPTY_TEXT"
	CodeModelNotLoaded      Code = "MODEL_NOT_LOADED"
	CodeLearningApply       Code = "LEARNING_APPLY_FAILED"
	CodeCloudRewrite        Code = "CLOUD_REWRITE_FAILED"
	CodeUnsupportedProvider Code = "UNSUPPORTED_PROVIDER"
	CodeStorage             Code = "STORAGE"
	CodeConfig              Code = "CONFIG"
)

// Error is a structured error carrying a code, message, and optional cause
type Error struct {
	code      Code
	message   string
	cause     error
	timestamp time.Time
	details   map[string]interface{}
}

// New creates a new Error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		code:      code,
		message:   message,
		timestamp: time.Now(),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a code and message, returning nil for nil
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		code:      code,
		message:   message,
		cause:     err,
		timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Message returns the error message without code or cause
func (e *Error) Message() string {
	return e.message
}

// Timestamp returns when the error was created
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// WithDetail attaches a key/value detail and returns the error for chaining
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.details == nil {
		e.details = make(map[string]interface{})
	}
	e.details[key] = value
	return e
}

// Details returns the attached details map (may be nil)
func (e *Error) Details() map[string]interface{} {
	return e.details
}

// HasCode reports whether err or any error in its chain carries the code
func HasCode(err error, code Code) bool {
	for err != nil {
		var typed *Error
		if errors.As(err, &typed) {
			if typed.code == code {
				return true
			}
			err = typed.cause
			continue
		}
		return false
	}
	return false
}

// CodeOf returns the code of the outermost typed error in the chain,
// or CodeUnknown if the chain contains no typed error
func CodeOf(err error) Code {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.code
	}
	return CodeUnknown
}
