package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies backend failures for fallback decisions.
type Kind string

const (
	// KindTimeout marks an attempt cancelled by its deadline.
	KindTimeout Kind = "timeout"

	// KindRequestFailed marks a transport or provider-side error.
	KindRequestFailed Kind = "request_failed"

	// KindUnparseable marks a response that carried no usable text.
	KindUnparseable Kind = "unparseable"

	// KindUnsupported marks a backend identifier with no registered adapter.
	// It is a configuration bug and never triggers fallback.
	KindUnsupported Kind = "unsupported_backend"

	// KindAllAttemptsFailed is terminal: primary and fallback both failed,
	// or fallback was disabled or skipped.
	KindAllAttemptsFailed Kind = "all_attempts_failed"
)

// Error wraps provider errors with a failure kind and status metadata.
type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "backend error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (status=%d)", e.Kind, e.Status)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError wraps err with a kind, preserving an existing *Error kind if set.
func NewError(kind Kind, err error) *Error {
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf classifies an arbitrary error into a failure kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var be *Error
	if errors.As(err, &be) && be.Kind != "" {
		return be.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindRequestFailed
}

// Recoverable reports whether a failure kind may be absorbed by a
// fallback attempt. Unsupported backends indicate a configuration bug
// and are surfaced immediately.
func Recoverable(kind Kind) bool {
	switch kind {
	case KindTimeout, KindRequestFailed, KindUnparseable:
		return true
	default:
		return false
	}
}
