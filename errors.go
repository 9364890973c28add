package gateAuth

import (
	"errors"
	"fmt"
)

var (
	// ErrServerUnavailable is an exported constant or variable used by the session core.
	ErrServerUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is an exported constant or variable used by the session core.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBootstrapFailed is an exported constant or variable used by the session core.
	ErrBootstrapFailed = errors.New("failed to prepare login")
	// ErrNoRefreshToken is an exported constant or variable used by the session core.
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrNoGuestToken is an exported constant or variable used by the session core.
	ErrNoGuestToken = errors.New("no guest token stored")
	// ErrRestoreRequired is an exported constant or variable used by the session core.
	ErrRestoreRequired = errors.New("session not restored yet")
	// ErrManagerNotReady is an exported constant or variable used by the session core.
	ErrManagerNotReady = errors.New("manager not ready")
	// ErrAlreadyAuthenticated is an exported constant or variable used by the session core.
	ErrAlreadyAuthenticated = errors.New("session already authenticated")
	// ErrMalformedResponse is an exported constant or variable used by the session core.
	ErrMalformedResponse = errors.New("malformed response payload")
)

// RequestError is an ordinary business-rule rejection (non-auth, non-outage
// 4xx). Title and Message come from the normalized server error body and are
// safe to show inline; raw server internals never reach the caller.
type RequestError struct {
	Title      string
	Message    string
	StatusCode int
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *RequestError) Error() string {
	if e.Title != "" && e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s: %s", e.StatusCode, e.Title, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}

// IsServerUnavailable reports whether err classifies as a recoverable outage.
func IsServerUnavailable(err error) bool {
	return errors.Is(err, ErrServerUnavailable)
}

// IsUnauthorized reports whether err means the session is genuinely invalid.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
