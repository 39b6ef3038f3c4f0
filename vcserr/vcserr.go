// Package vcserr defines the typed error values returned across the
// repository's packages, so that callers (in particular the CLI) can
// map a failure to a stable exit code without string-matching error
// messages.
package vcserr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure into one of a small set of recognizable
// categories.
type Kind int

const (
	// Unknown covers failures that don't fit any other Kind.
	Unknown Kind = iota
	// IOError wraps a failure from the underlying filesystem.
	IOError
	// NotFound is returned when an object, ref, branch or commit
	// could not be located.
	NotFound
	// AlreadyExists is returned when creating something that is
	// already present (a branch, usually).
	AlreadyExists
	// Corrupt is returned when on-disk data doesn't parse according
	// to its expected format.
	Corrupt
	// BadOid is returned when a string doesn't look like a valid
	// object id.
	BadOid
	// BadType is returned when an object has a type different from
	// the one the caller expected.
	BadType
	// IsCurrent is returned when an operation (like deleting a
	// branch) targets the currently checked-out branch.
	IsCurrent
	// DetachedHead is returned when an operation that requires an
	// attached HEAD is attempted while HEAD is detached.
	DetachedHead
	// EmptyIndex is returned when committing with nothing staged.
	EmptyIndex
	// NotARepository is returned when no repository could be found.
	NotARepository
)

func (k Kind) String() string {
	switch k {
	case IOError:
		return "io error"
	case NotFound:
		return "not found"
	case AlreadyExists:
		return "already exists"
	case Corrupt:
		return "corrupt data"
	case BadOid:
		return "invalid object id"
	case BadType:
		return "unexpected object type"
	case IsCurrent:
		return "is current"
	case DetachedHead:
		return "detached HEAD"
	case EmptyIndex:
		return "nothing to commit"
	case NotARepository:
		return "not a repository"
	default:
		return "error"
	}
}

// Error is a classified error: Kind lets callers branch on the
// failure category, Err carries the underlying cause and message.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

// Unwrap lets errors.Is/errors.As see through to the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind from a message.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Err: errors.New(msg)}
}

// Newf builds an Error of the given kind from a formatted message.
func Newf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a Kind to an existing error, preserving it as the
// cause. Returns nil if err is nil.
func Wrap(k Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Err: errors.Wrap(err, msg)}
}

// Wrapf is like Wrap but with a formatted message.
func Wrapf(k Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Err: errors.Wrapf(err, format, args...)}
}

// KindOf extracts the Kind of err, walking its cause chain. Returns
// Unknown if err is nil or carries no Kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err (or something in its cause chain) carries
// the given Kind.
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}
