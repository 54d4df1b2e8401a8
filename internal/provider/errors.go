package provider

import (
	"errors"
	"fmt"
)

// Error is returned by every backend. Status is the HTTP status of the
// response, or 0 when no response was received.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Transport reports whether the failure happened before any response arrived.
func (e *Error) Transport() bool { return e.Status == 0 }

// TransportError wraps a network-level failure.
func TransportError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// ServiceError builds an error for a response that arrived but was not
// usable. message is the provider's own message, possibly empty.
func ServiceError(op string, status int, message string) *Error {
	return &Error{Op: op, Status: status, Message: message}
}

// BadResponse builds a service error for a reply that arrived but could not
// be used. The cause stays in Err; Message is left for the provider's own text.
func BadResponse(op string, status int, cause error) *Error {
	return &Error{Op: op, Status: status, Err: cause}
}

// AsError extracts a provider error from err.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
