package api

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable classification of an invocation
// failure. Kinds are part of the protocol surface: callers dispatch on
// them, so values are stable strings rather than numeric codes.
type ErrorKind string

const (
	// KindInvalidArgument: a caller-supplied argument failed a
	// semantic check before the handler touched the upstream API.
	KindInvalidArgument ErrorKind = "InvalidArgument"

	// KindUnknownCapability: the invocation named a capability that
	// is not present in the registry.
	KindUnknownCapability ErrorKind = "UnknownCapability"

	// KindTransportError: the upstream service could not be reached
	// or did not answer within the configured timeout.
	KindTransportError ErrorKind = "TransportError"

	// KindUpstreamProtocolError: the upstream service answered with a
	// payload that cannot be interpreted as data (for example an HTML
	// error page). Never guessed at or silently coerced.
	KindUpstreamProtocolError ErrorKind = "UpstreamProtocolError"

	// KindUpstreamRejected: the upstream service returned an HTTP
	// error status with a structured error body.
	KindUpstreamRejected ErrorKind = "UpstreamRejected"

	// KindInternalError: any other unexpected fault inside a handler.
	// Full detail is logged server-side; callers see one message.
	KindInternalError ErrorKind = "InternalError"
)

// InvocationError is the structured failure shape that crosses the
// dispatcher boundary. Message is safe to show to the caller; Cause
// carries upstream detail (status code, upstream message) when present.
type InvocationError struct {
	Kind    ErrorKind
	Message string
	Cause   string
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewInvocationError creates an InvocationError with the given kind and
// formatted message.
func NewInvocationError(kind ErrorKind, format string, args ...interface{}) *InvocationError {
	return &InvocationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsInvocation extracts an *InvocationError from err, unwrapping as
// needed. Returns nil when err is not an invocation error.
func AsInvocation(err error) *InvocationError {
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return invErr
	}
	return nil
}
