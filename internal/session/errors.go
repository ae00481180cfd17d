package session

import (
	"errors"
	"fmt"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
)

var (
	// ErrNoActiveSession is returned by operations that need a prior
	// successful analysis.
	ErrNoActiveSession = errors.New("no active session, analyse a listing first")

	// ErrConcurrentSubmission is returned when a submission is already in
	// flight. The new request is dropped.
	ErrConcurrentSubmission = errors.New("an analysis is already in progress")
)

// ValidationError reports a listing input field that is out of bounds.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NetworkError wraps a failed backend call. Message is the backend-supplied
// message, or an HTTP status fallback.
type NetworkError struct {
	StatusCode int // 0 for transport failures
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func newNetworkError(err error) *NetworkError {
	ne := &NetworkError{Err: err, Message: err.Error()}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		ne.StatusCode = apiErr.StatusCode
	}
	return ne
}
