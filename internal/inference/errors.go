package inference

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrUpstream matches every failure of a call to the inference service.
var ErrUpstream = errors.New("inference service call failed")

// Kind classifies an upstream failure for logs and metrics.
// Callers outside this package should not branch on it: all kinds are
// reported to clients the same way.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindUnreachable Kind = "unreachable"
	KindStatus      Kind = "status"
	KindDecode      Kind = "decode"
)

// Error describes a failed inference call.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int // set for KindStatus
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s: inference service returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every *Error match ErrUpstream.
func (e *Error) Is(target error) bool {
	return target == ErrUpstream
}

// KindOf returns the failure kind of err, or "" if err is not an upstream error.
func KindOf(err error) Kind {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Kind
	}
	return ""
}

// transportError wraps a failure that happened before a response was read.
func transportError(op string, err error) *Error {
	kind := KindUnreachable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &Error{Op: op, Kind: kind, Err: err}
}
