package bus

import (
	"errors"
	"fmt"
)

// Kind classifies a bus failure into its escalation tier.
type Kind int

const (
	// KindTransient failures are retried on the next polling iteration
	// with no backoff and no state change.
	KindTransient Kind = iota

	// KindLoop failures mean the event loop lost the session; the caller
	// makes exactly one reconnect attempt.
	KindLoop

	// KindReconnect failures mean the reconnect attempt itself failed;
	// the session is over and the device restarts.
	KindReconnect

	// KindFatal failures are unrecoverable within the session.
	KindFatal
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindLoop:
		return "loop"
	case KindReconnect:
		return "reconnect"
	case KindFatal:
		return "fatal"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error wraps an underlying failure with its escalation kind.
type Error struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("bus %s failure: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// wrap builds a kinded error.
func wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the escalation kind of err. Unclassified errors are fatal:
// anything a layer does not recognize escapes to the top-level restart.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindFatal
}
