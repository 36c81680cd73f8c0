package ocr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure so callers can branch on it.
type Kind int

const (
	// KindUnexpected is any failure that fits no other kind: cancellation,
	// encoding errors, a child process that could not be started.
	KindUnexpected Kind = iota

	// KindEngineNotFound means the engine could not be located.
	KindEngineNotFound

	// KindQuery means the engine was found but its version could not be read.
	KindQuery

	// KindProcessing means the engine ran and rejected the job, typically a
	// missing language pack or a broken installation.
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindEngineNotFound:
		return "engine_not_found"
	case KindQuery:
		return "query"
	case KindProcessing:
		return "processing"
	default:
		return "unexpected"
	}
}

// Error is returned by every Engine method.
type Error struct {
	Kind Kind
	Op   string // "lookup", "version", "recognize", "languages"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("tesseract %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("tesseract %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrEngineNotFound)
// works regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrEngineNotFound = &Error{Kind: KindEngineNotFound}
	ErrQuery          = &Error{Kind: KindQuery}
	ErrProcessing     = &Error{Kind: KindProcessing}
)

// ErrBackendUnavailable is wrapped when the configured backend was not
// compiled into this binary.
var ErrBackendUnavailable = errors.New("backend not available in this build")

// KindOf returns the kind of err. Errors that did not come from an Engine are
// KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
