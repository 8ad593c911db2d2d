package client

import (
	"errors"
	"fmt"
)

// ErrMutationInFlight rejects a second mutation while one is pending;
// mutations on a single collection are serialized.
var ErrMutationInFlight = errors.New("another change is still in progress")

// ValidationError is a pre-flight failure. It never reaches the
// network.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// APIError is any non-200 response. Detail carries the server's message
// verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// RefreshError reports a mutation that succeeded but whose follow-up
// reload failed. Callers present this differently from a failed
// mutation: the change likely took effect, the local copy is just
// stale.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("change saved, but reloading failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
