// Package source defines the contract shared by all lead sources: a
// fetch yields raw candidate items or fails with a classified transport
// error. Adapters never depend on each other.
package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// Item is one raw candidate record produced by an adapter, before
// scoring and deduplication.
type Item struct {
	Title     string
	URL       string
	Published string
	Source    string
	Summary   string
}

// Kind classifies a fetch failure. All kinds are soft at the
// per-feed/per-query granularity: the orchestrator records a diagnostic
// and moves on.
type Kind string

const (
	KindTimeout   Kind = "timeout"
	KindStatus    Kind = "status"
	KindParse     Kind = "parse"
	KindTransport Kind = "transport"
)

// Error is a classified adapter failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response.
func StatusError(op string, status string) *Error {
	return &Error{Kind: KindStatus, Op: op, Err: fmt.Errorf("bad status: %s", status)}
}

// ParseError reports a malformed feed/XML/JSON payload.
func ParseError(op string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}

// Classify wraps a transport-level error, detecting timeouts.
func Classify(op string, err error) *Error {
	kind := KindTransport

	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case os.IsTimeout(err):
		kind = KindTimeout
	}

	return &Error{Kind: kind, Op: op, Err: err}
}
