package charting

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a notation decoding failure.
type ErrorType string

const (
	// ErrorTypeUnknownCode indicates a character or token that does not match
	// any known vocabulary entry.
	ErrorTypeUnknownCode ErrorType = "unknown_code"

	// ErrorTypeMalformedSequence indicates a structural violation, such as a
	// second-serve code supplied when the first serve did not fault, or an
	// unparsable remainder left after rally decoding.
	ErrorTypeMalformedSequence ErrorType = "malformed_sequence"

	// ErrorTypeMissingRequiredServe indicates the fully-coded branch was
	// entered with no first-serve code.
	ErrorTypeMissingRequiredServe ErrorType = "missing_required_serve"
)

// ParseError is a typed notation decoding failure. It carries the offending
// substring and the full original code for diagnosis.
type ParseError struct {
	// Type is the category of failure
	Type ErrorType `json:"type"`

	// Message is the human-readable reason
	Message string `json:"message"`

	// Offending is the character or token that could not be decoded
	Offending string `json:"offending,omitempty"`

	// Input is the full original code the failure occurred in
	Input string `json:"input,omitempty"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offending != "" {
		return fmt.Sprintf("%s: %s (offending %q in %q)", e.Type, e.Message, e.Offending, e.Input)
	}
	return fmt.Sprintf("%s: %s (input %q)", e.Type, e.Message, e.Input)
}

// NewParseError creates a new notation decoding failure.
func NewParseError(errType ErrorType, message string) *ParseError {
	return &ParseError{
		Type:    errType,
		Message: message,
	}
}

// WithOffending records the substring that could not be decoded.
func (e *ParseError) WithOffending(offending string) *ParseError {
	e.Offending = offending
	return e
}

// WithInput records the full original code.
func (e *ParseError) WithInput(input string) *ParseError {
	e.Input = input
	return e
}

// AsParseError unwraps err into a *ParseError if possible.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// IsErrorType reports whether err is a ParseError of the given type.
func IsErrorType(err error, errType ErrorType) bool {
	perr, ok := AsParseError(err)
	return ok && perr.Type == errType
}
