// =============================================================================
// samcut - Record Format Errors
// =============================================================================
//
// Structural errors raised while assembling a record from one input line.
// Every error is tied to a single line and is never retried: the format is
// deterministic, so parsing the same line again cannot change the outcome.
//
// ERROR KINDS:
//   - TooFewFields          : fewer than 11 tab-separated tokens
//   - MalformedOptionalTag  : a trailing token is not NAME:TYPE:VALUE
//   - InvalidFlagValue      : the FLAG field is not a signed 32-bit integer
//
// =============================================================================

package record

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// ErrorKind classifies a FormatError.
type ErrorKind int

const (
	TooFewFields ErrorKind = iota + 1
	MalformedOptionalTag
	InvalidFlagValue
)

// Sentinels, one per kind, for use with errors.Is.
var (
	ErrTooFewFields         = errors.New("too few fields")
	ErrMalformedOptionalTag = errors.New("malformed optional field")
	ErrInvalidFlagValue     = errors.New("invalid flag integer")
)

// ErrHeader is the skip signal for header lines. It is not a FormatError.
var ErrHeader = errors.New("header line")

// String returns the kind name used in error reports.
func (k ErrorKind) String() string {
	switch k {
	case TooFewFields:
		return "TooFewFields"
	case MalformedOptionalTag:
		return "MalformedOptionalTag"
	case InvalidFlagValue:
		return "InvalidFlagValue"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case TooFewFields:
		return ErrTooFewFields
	case MalformedOptionalTag:
		return ErrMalformedOptionalTag
	case InvalidFlagValue:
		return ErrInvalidFlagValue
	default:
		return nil
	}
}

// =============================================================================
// FORMAT ERROR
// =============================================================================

// FormatError describes why one input line could not be assembled.
type FormatError struct {
	// Kind is the error classification.
	Kind ErrorKind

	// Token is the offending token (the optional field or the FLAG value).
	// Empty for TooFewFields.
	Token string

	// Found is the number of tokens on the line. Only set for TooFewFields.
	Found int

	// Line is the 1-based input line number. Assemble has no notion of input
	// position, so it is zero until the caller fills it in.
	Line int
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var msg string
	switch e.Kind {
	case TooFewFields:
		msg = fmt.Sprintf("%s: expected at least %d, found %d", ErrTooFewFields, MandatoryCount, e.Found)
	case MalformedOptionalTag:
		msg = fmt.Sprintf("%s: %q", ErrMalformedOptionalTag, e.Token)
	case InvalidFlagValue:
		msg = fmt.Sprintf("%s: %q", ErrInvalidFlagValue, e.Token)
	default:
		msg = "format error"
	}

	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s (%s)", e.Line, msg, e.Kind)
	}
	return fmt.Sprintf("%s (%s)", msg, e.Kind)
}

// Unwrap returns the sentinel for the error kind.
func (e *FormatError) Unwrap() error {
	return e.Kind.sentinel()
}

// AtLine sets the input line number and returns the receiver.
func (e *FormatError) AtLine(line int) *FormatError {
	e.Line = line
	return e
}
