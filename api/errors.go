package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fixed status decision table. Every failure is
// terminal for the user action that triggered it; the client never
// retries on its own.
var (
	// ErrNoPayload means the response body matched none of the known
	// envelope shapes. Callers treat it as "nothing usable", not as a
	// hard failure.
	ErrNoPayload = errors.New("no usable payload in response")

	// ErrSessionExpired is returned for 401. By the time callers see it
	// the local session has already been purged.
	ErrSessionExpired = errors.New("session expired")

	// ErrPermissionDenied is returned for 403. The session is untouched.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned for 404.
	ErrNotFound = errors.New("not found")
)

// StatusError covers the unspecified 4xx/5xx rows of the decision
// table, including 405 (endpoint misconfiguration).
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	if e.Code == 405 {
		return "method not supported by endpoint (server configuration error)"
	}
	return fmt.Sprintf("server error: %d", e.Code)
}

// ValidationError carries the server's 422 per-field error list. The
// server is the final authority: these override any client-side
// validation verdict.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

// TransportError means no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "network failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Notice maps any error from this package to the human-readable
// message shown to the user.
func Notice(err error) string {
	var verr *ValidationError
	var terr *TransportError
	var serr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSessionExpired):
		return "Session expired, please log in again"
	case errors.Is(err, ErrPermissionDenied):
		return "You do not have permission to do that"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrNoPayload):
		return "The server returned no usable data"
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &terr):
		return "Network error. Check your connection"
	case errors.As(err, &serr):
		return serr.Error()
	default:
		return err.Error()
	}
}
