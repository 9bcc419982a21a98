package types

import (
	"errors"
	"fmt"
)

// ErrKind classifies errors returned by the alskit packages so callers can
// branch on the failure class without string matching.
type ErrKind int

const (
	// ErrKindFormat indicates a malformed container: bad gzip stream, missing
	// Ableton wrapper, or a wrapper with the wrong number of children.
	ErrKindFormat ErrKind = iota + 1

	// ErrKindSchema indicates a node that exists but has the wrong tag or
	// shape for the requested typed view (e.g. a missing <Mixer> child).
	ErrKindSchema

	// ErrKindRange indicates an index argument outside valid bounds.
	ErrKindRange

	// ErrKindReference indicates a dangling or unrecognized ID reference:
	// an unknown track group, an unmapped pointee ID, or a send holder
	// pointing at a return track that is not part of the batch.
	ErrKindReference

	// ErrKindInvariant indicates a request that would violate a structural
	// rule of the set, such as a return track carrying a track group ID or a
	// primary track appearing after a return track.
	ErrKindInvariant

	// ErrKindUnsupported indicates a recognized but unsupported feature,
	// currently only linked track groups.
	ErrKindUnsupported

	// ErrKindInternal indicates an engine consistency fault that should never
	// happen with well-formed input, such as a send holder whose declared ID
	// disagrees with its position. Not recoverable; callers should treat it
	// as fatal rather than retriable.
	ErrKindInternal
)

// Error is the concrete error type returned by alskit packages.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrNotAbleton indicates the data does not contain an Ableton document.
	ErrNotAbleton = &Error{Kind: ErrKindFormat, Msg: "not an Ableton document"}
	// ErrUnsupported indicates a recognized but unsupported feature.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported feature"}
)

// Formatf builds an ErrKindFormat error.
func Formatf(format string, args ...any) *Error {
	return &Error{Kind: ErrKindFormat, Msg: fmt.Sprintf(format, args...)}
}

// Schemaf builds an ErrKindSchema error.
func Schemaf(format string, args ...any) *Error {
	return &Error{Kind: ErrKindSchema, Msg: fmt.Sprintf(format, args...)}
}

// Rangef builds an ErrKindRange error.
func Rangef(format string, args ...any) *Error {
	return &Error{Kind: ErrKindRange, Msg: fmt.Sprintf(format, args...)}
}

// Referencef builds an ErrKindReference error.
func Referencef(format string, args ...any) *Error {
	return &Error{Kind: ErrKindReference, Msg: fmt.Sprintf(format, args...)}
}

// Invariantf builds an ErrKindInvariant error.
func Invariantf(format string, args ...any) *Error {
	return &Error{Kind: ErrKindInvariant, Msg: fmt.Sprintf(format, args...)}
}

// Unsupportedf builds an ErrKindUnsupported error.
func Unsupportedf(format string, args ...any) *Error {
	return &Error{Kind: ErrKindUnsupported, Msg: fmt.Sprintf(format, args...)}
}

// Internalf builds an ErrKindInternal error.
func Internalf(format string, args ...any) *Error {
	return &Error{Kind: ErrKindInternal, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to a kind and message.
func Wrap(kind ErrKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether err (or anything it wraps) is an *Error of the given
// kind.
func IsKind(err error, kind ErrKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err if it is an *Error, or 0 otherwise.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
