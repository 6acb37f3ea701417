package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrKind buckets an adapter failure for diagnostics. Adapters never let
// anything else cross their boundary for expected failure modes.
type ErrKind string

const (
	ErrAuth        ErrKind = "auth"
	ErrRateLimited ErrKind = "rate_limited"
	ErrTimeout     ErrKind = "timeout"
	ErrParse       ErrKind = "parse"
	ErrNetwork     ErrKind = "network"
)

// FetchError is the typed failure of one adapter invocation.
type FetchError struct {
	Source string
	Kind   ErrKind
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func newFetchError(source string, kind ErrKind, err error) *FetchError {
	return &FetchError{Source: source, Kind: kind, Err: err}
}

// classifyTransport maps a transport-level error to timeout or network.
func classifyTransport(source string, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newFetchError(source, ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return newFetchError(source, ErrTimeout, err)
	}
	return newFetchError(source, ErrNetwork, err)
}

// classifyStatus maps a non-2xx provider response to an error kind.
func classifyStatus(source string, status int) *FetchError {
	err := fmt.Errorf("unexpected status %d", status)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return newFetchError(source, ErrAuth, err)
	case status == http.StatusTooManyRequests:
		return newFetchError(source, ErrRateLimited, err)
	default:
		return newFetchError(source, ErrNetwork, err)
	}
}

// AsFetchError extracts the typed adapter failure from err, wrapping
// anything untyped as a network failure so the coordinator always has a
// kind to report.
func AsFetchError(source string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return classifyTransport(source, err)
}
