// Package errors provides the unified error type and factory functions for
// chemsolver. Every layer of the application (domain, application,
// infrastructure, interfaces) returns *AppError so that CLI output, HTTP
// responses, Kafka dead-letter headers and log fields all see the same code.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and the factory).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// AppError
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout chemsolver.
// It supports errors.Is / errors.As / errors.Unwrap through Unwrap.
//
// Usage:
//
//	return errors.IllegalFormula("C O")
//	return errors.Wrap(err, errors.ErrCodeCacheUnavailable, "redis get failed")
type AppError struct {
	// Code identifies the failure category.
	Code ErrorCode
	// Message is the primary human-readable description of the error.
	Message string
	// Detail carries the offending input (formula text, symbol, combination).
	Detail string
	// Cause is the underlying error, if any.
	Cause error
	// Stack is captured at construction and never rendered by Error().
	Stack string
}

// Error implements the error interface.
// Format: "[<code>] <message>: <detail>", detail omitted when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code.String(), e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// UserMessage is the text shown to end users: the message and detail without
// the code prefix.
func (e *AppError) UserMessage() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// It is safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Primary factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.
// If err is nil, Wrap returns nil. When err is already an *AppError and code
// is CodeUnknown the original code is preserved.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsNotFound reports whether err's chain carries CodeNotFound or a cache miss.
func IsNotFound(err error) bool {
	return IsCode(err, ErrCodeNotFound) || IsCode(err, ErrCodeCacheMiss)
}

// GetCode extracts the ErrorCode from the first *AppError found in err's chain.
// If err is nil or carries no *AppError, CodeUnknown is returned.
func GetCode(err error) ErrorCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// As is re-exported so callers importing this package under the name errors
// keep access to the standard helper.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is re-exported for the same reason as As.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// ─────────────────────────────────────────────────────────────────────────────
// Convenience factory functions
// ─────────────────────────────────────────────────────────────────────────────

// NotFound constructs a CodeNotFound AppError.
func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Stack: captureStack(1)}
}

// InvalidParam constructs a CodeInvalidParam AppError.
func InvalidParam(message string) *AppError {
	return &AppError{Code: CodeInvalidParam, Message: message, Stack: captureStack(1)}
}

// Internal constructs a CodeInternal AppError.
func Internal(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Stack: captureStack(1)}
}

// IllegalFormula reports malformed formula text. The offending formula is
// carried verbatim in Detail.
func IllegalFormula(formula string) *AppError {
	return &AppError{
		Code:    ErrCodeIllegalFormula,
		Message: "Illegal Formula",
		Detail:  formula,
		Stack:   captureStack(1),
	}
}

// UnknownElement reports a symbol that has no catalog entry.
func UnknownElement(symbol string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownElement,
		Message: "Unknown Element",
		Detail:  symbol,
		Stack:   captureStack(1),
	}
}

// IllegalMolecule reports a molecule that cannot be built or classified.
// what names the unmatched part (a shape combination, an element count, ...).
func IllegalMolecule(what string) *AppError {
	return &AppError{
		Code:    ErrCodeIllegalMolecule,
		Message: "Illegal Molecule",
		Detail:  fmt.Sprintf("Molecule: %s is not a valid molecule.", what),
		Stack:   captureStack(1),
	}
}

// UnusableAtom reports an atom that is excluded from scientific operations.
func UnusableAtom(name, symbol string) *AppError {
	return &AppError{
		Code:    ErrCodeUnusableAtom,
		Message: "Unusable Atom",
		Detail:  fmt.Sprintf("Atom %s(%s) is not usable and no operations can be done with it.", name, symbol),
		Stack:   captureStack(1),
	}
}

//Personal.AI order the ending
