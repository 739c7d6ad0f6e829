package types

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation. Every kind is raised before any mutation happens.
type Kind int

const (
	KindPosition      Kind = iota + 1 // line/column outside the valid range
	KindLength                        // length exceeds the characters remaining on the line
	KindEmptyDocument                 // position other than 1:1 on a document with no lines
	KindStructural                    // unknown/duplicate id, root misuse, malformed tree file
	KindState                         // workspace state forbids the request
	KindIO                            // file read/write failure
)

func (k Kind) String() string {
	switch k {
	case KindPosition:
		return "position error"
	case KindLength:
		return "length error"
	case KindEmptyDocument:
		return "empty document error"
	case KindStructural:
		return "structural error"
	case KindState:
		return "state error"
	case KindIO:
		return "io error"
	default:
		return "error"
	}
}

// Error is the error type returned by document and workspace operations.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // cause, for KindIO
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrPosition      = &Error{Kind: KindPosition}
	ErrLength        = &Error{Kind: KindLength}
	ErrEmptyDocument = &Error{Kind: KindEmptyDocument}
	ErrStructural    = &Error{Kind: KindStructural}
	ErrState         = &Error{Kind: KindState}
	ErrIO            = &Error{Kind: KindIO}
)

func newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func PositionErrorf(format string, args ...interface{}) error {
	return newf(KindPosition, format, args...)
}

func LengthErrorf(format string, args ...interface{}) error {
	return newf(KindLength, format, args...)
}

func EmptyDocumentErrorf(format string, args ...interface{}) error {
	return newf(KindEmptyDocument, format, args...)
}

func StructuralErrorf(format string, args ...interface{}) error {
	return newf(KindStructural, format, args...)
}

func StateErrorf(format string, args ...interface{}) error {
	return newf(KindState, format, args...)
}

// IOError wraps cause; the cause text is appended to msg.
func IOError(cause error, format string, args ...interface{}) error {
	return &Error{Kind: KindIO, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
