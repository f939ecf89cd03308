// If you are AI: This file defines the structured AMF0 error type and its kinds.

package amf0

import (
	"errors"
	"fmt"
)

// Kind categorizes a codec failure.
type Kind string

const (
	KindUnexpectedEOF             Kind = "unexpected_eof"
	KindInvalidUTF8               Kind = "invalid_utf8"
	KindUnsupportedMarker         Kind = "unsupported_marker"
	KindUnexpectedObjectEnd       Kind = "unexpected_object_end"
	KindMalformedObjectTerminator Kind = "malformed_object_terminator"
	KindInvalidReference          Kind = "invalid_reference"
	KindRecursionLimitExceeded    Kind = "recursion_limit_exceeded"
	KindHeaderLengthMismatch      Kind = "header_length_mismatch"
	KindTrailingBytes             Kind = "trailing_bytes"
	KindStringTooLong             Kind = "string_too_long"
	KindUnsupportedValue          Kind = "unsupported_value"
)

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind.
var (
	ErrUnexpectedEOF             = errors.New("amf0: unexpected end of data")
	ErrInvalidUTF8               = errors.New("amf0: invalid UTF-8 text")
	ErrUnsupportedMarker         = errors.New("amf0: unsupported marker")
	ErrUnexpectedObjectEnd       = errors.New("amf0: unexpected object-end marker")
	ErrMalformedObjectTerminator = errors.New("amf0: malformed object terminator")
	ErrInvalidReference          = errors.New("amf0: invalid reference")
	ErrRecursionLimitExceeded    = errors.New("amf0: recursion limit exceeded")
	ErrHeaderLengthMismatch      = errors.New("amf0: declared length mismatch")
	ErrTrailingBytes             = errors.New("amf0: trailing bytes after packet")
	ErrStringTooLong             = errors.New("amf0: string too long")
	ErrUnsupportedValue          = errors.New("amf0: unsupported value")
)

var sentinels = map[Kind]error{
	KindUnexpectedEOF:             ErrUnexpectedEOF,
	KindInvalidUTF8:               ErrInvalidUTF8,
	KindUnsupportedMarker:         ErrUnsupportedMarker,
	KindUnexpectedObjectEnd:       ErrUnexpectedObjectEnd,
	KindMalformedObjectTerminator: ErrMalformedObjectTerminator,
	KindInvalidReference:          ErrInvalidReference,
	KindRecursionLimitExceeded:    ErrRecursionLimitExceeded,
	KindHeaderLengthMismatch:      ErrHeaderLengthMismatch,
	KindTrailingBytes:             ErrTrailingBytes,
	KindStringTooLong:             ErrStringTooLong,
	KindUnsupportedValue:          ErrUnsupportedValue,
}

// Error is returned by every decode and encode failure. Offset is the byte
// position in the input (or output, when encoding) where the failure occurred.
type Error struct {
	Kind   Kind
	Offset int
	Marker Marker // set for KindUnsupportedMarker
	Index  int    // reference index for KindInvalidReference
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := sentinels[e.Kind].Error()
	switch e.Kind {
	case KindUnsupportedMarker:
		msg = fmt.Sprintf("%s %s", msg, e.Marker)
	case KindInvalidReference:
		msg = fmt.Sprintf("%s %d", msg, e.Index)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("%s (offset %d)", msg, e.Offset)
}

// Is matches the sentinel for the error's kind, or another *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Kind == e.Kind
	}
	return sentinels[e.Kind] == target
}

// newError builds an *Error with a formatted detail message.
func newError(kind Kind, offset int, format string, args ...any) *Error {
	e := &Error{Kind: kind, Offset: offset}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
