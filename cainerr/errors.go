// Package cainerr implements Cain's error taxonomy: UnknownKind,
// EncodingFailure, and DecodingFailure. Every error surfaced across a
// package boundary is a *cainerr.Error carrying enough context — the
// schema kind and the logical position — to identify what failed.
package cainerr

import (
	"errors"
	"fmt"
)

// Category is one of the three abstract error kinds Cain distinguishes.
type Category string

const (
	// UnknownKind: the schema resolver could not identify a kind.
	UnknownKind Category = "UnknownKind"
	// EncodingFailure: a value violates its schema (wrong arity, missing
	// field, wrong union variant, literal not in enum, integer out of
	// the chosen width, and so on).
	EncodingFailure Category = "EncodingFailure"
	// DecodingFailure: the byte stream does not match its schema (bad
	// Bool byte, unterminated string, impossible UTF-8 lead, a zero-count
	// repetition block, an out-of-range Type index).
	DecodingFailure Category = "DecodingFailure"
)

// Error is Cain's concrete error type. Path identifies the logical
// position of the failure (e.g. "orders.[3].total"); it is built up by
// wrapping calls as the recursive codec unwinds.
type Error struct {
	Category Category
	Kind     string // schema kind name, "" if not applicable
	Path     string
	Msg      string
	Cause    error
}

func (e *Error) Error() string {
	prefix := string(e.Category)
	if e.Kind != "" {
		prefix += "(" + e.Kind + ")"
	}
	if e.Path != "" {
		prefix += " at " + e.Path
	}
	if e.Msg == "" {
		return prefix
	}
	return prefix + ": " + e.Msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New constructs an *Error with no wrapped cause.
func New(cat Category, kind, path, msg string) *Error {
	return &Error{Category: cat, Kind: kind, Path: path, Msg: msg}
}

// Wrap constructs an *Error that carries cause, with the given category,
// kind and path and cause's text as its message. An existing *Error in
// cause is kept as the Cause; its category and kind are not copied.
func Wrap(cat Category, kind, path string, cause error) *Error {
	return &Error{Category: cat, Kind: kind, Path: path, Msg: cause.Error(), Cause: cause}
}

// WithPath returns a copy of err (if it is a *Error) with path prepended,
// building up a dotted/indexed position as the recursion unwinds. Non-Cain
// errors are wrapped as a DecodingFailure with no kind.
func WithPath(err error, segment string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		if cp.Path == "" {
			cp.Path = segment
		} else if segment != "" {
			cp.Path = segment + "." + cp.Path
		}
		return &cp
	}
	return &Error{Category: DecodingFailure, Path: segment, Msg: err.Error(), Cause: err}
}

// Is reports whether err (or something it wraps) has the given category.
func Is(err error, cat Category) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == cat
	}
	return false
}

// Recover converts a panicking wire.Fault (or any other panic value) into
// a DecodingFailure *Error. Call it deferred at every exported
// encode/decode entry point: no panic should ever cross a package
// boundary.
func Recover(kind, path string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok {
		*errp = Wrap(DecodingFailure, kind, path, err)
		return
	}
	*errp = New(DecodingFailure, kind, path, fmt.Sprintf("%v", r))
}
