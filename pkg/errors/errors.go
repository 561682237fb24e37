// Package errors provides the structured error taxonomy shared by the token
// engine, the validator and the command-line tools.
//
// Every failure the engine can describe as data carries a [Code]. The
// resolver returns these errors per token instead of aborting, the validator
// collects them into reports, and the CLI maps them onto exit codes.
//
// # Error Codes
//
// Codes are the kebab-case names printed in validation output:
//   - schema-violation: structural problems with a node
//   - unresolved-reference / reference-to-non-token: bad reference targets
//   - circular-reference: a reference chain that loops back on itself
//   - interpolation-not-allowed: a reference embedded in other text
//   - type-value-mismatch: a value that contradicts its declared type
//   - parse-failure: a composite string that could not be coerced
//
// # Usage
//
//	err := errors.New(errors.CodeUnresolvedReference, "color.primary", "reference to %q not found", target)
//	if errors.Is(err, errors.CodeUnresolvedReference) {
//	    // handle
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Engine error codes.
const (
	CodeSchemaViolation         Code = "schema-violation"
	CodeUnresolvedReference     Code = "unresolved-reference"
	CodeCircularReference       Code = "circular-reference"
	CodeReferenceToNonToken     Code = "reference-to-non-token"
	CodeInterpolationNotAllowed Code = "interpolation-not-allowed"
	CodeTypeValueMismatch       Code = "type-value-mismatch"
	CodeParseFailure            Code = "parse-failure"
)

// Warning-only codes. The validator never raises these as errors.
const (
	CodeMissingType      Code = "missing-type"
	CodeNamingConvention Code = "naming-convention"
	CodeUnknownProperty  Code = "unknown-property"
)

// Plumbing codes for failures outside the token graph.
const (
	CodeInvalidInput Code = "invalid-input"
	CodeIO           Code = "io-failure"
	CodeInternal     Code = "internal"
)

// Sentinel errors for store and cache lookups.
var (
	// ErrNotFound is returned when a requested document or entry does not exist.
	ErrNotFound = errors.New("not found")
)

// Error is a structured error with a code, the token path it concerns and an
// optional cause.
type Error struct {
	Code    Code     // Machine-readable error code
	Path    string   // Token path the error is about (may be empty)
	Message string   // Human-readable message
	Cycle   []string // Full cycle for circular-reference errors, first path repeated last
	Cause   error    // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error for path with the given code and formatted message.
func New(code Code, path, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Cyclic creates a circular-reference error for path. The cycle is copied.
func Cyclic(path string, cycle []string) *Error {
	c := append([]string(nil), cycle...)
	return &Error{
		Code:    CodeCircularReference,
		Path:    path,
		Message: "circular reference: " + strings.Join(c, " -> "),
		Cycle:   c,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// As is a re-export of the standard library errors.As so callers do not need
// two imports named errors.
func As(err error, target any) bool {
	return errors.As(err, target)
}
