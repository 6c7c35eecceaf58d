// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind int

const (
	// KindInvalid marks a rejected argument.
	KindInvalid Kind = iota + 1
	// KindProvider marks a failure talking to arXiv or reading its answer.
	KindProvider
	// KindNotFound marks an identifier arXiv does not know.
	KindNotFound
	// KindStorage marks a paper store or filesystem failure.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindProvider:
		return "provider"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation. Its message is the message of
// the underlying cause so callers can embed it in a text result.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func invalidf(op, format string, args ...any) *Error {
	return newError(KindInvalid, op, fmt.Errorf(format, args...))
}

// KindOf returns the Kind of err, or 0 when err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// SearchFailed renders a search failure as the text returned to tool callers.
func SearchFailed(err error) string {
	return "Error searching for papers: " + err.Error()
}

// ExtractFailed renders a detail lookup failure as the text returned to tool callers.
func ExtractFailed(err error) string {
	return "Error extracting paper info: " + err.Error()
}
