// Package streamerr defines the stream processor's error-kind taxonomy: a
// small, wrappable error type that callers can test with errors.Is/As
// instead of string-matching messages.
package streamerr

import (
	"errors"
	"fmt"
)

// Kind classifies a stream processor fault.
type Kind string

const (
	// ConfigInvalid marks a duplicate channel key, a malformed namespace
	// pattern, or an unknown mode requested at construction time. Always
	// surfaced before iteration starts; never recoverable.
	ConfigInvalid Kind = "config_invalid"

	// RawShapeUnknown marks a raw runtime element that matches none of the
	// accepted shapes. Terminal: ends the event sequence.
	RawShapeUnknown Kind = "raw_shape_unknown"

	// ToolCallOrphanArg marks an argument fragment that arrived without a
	// prior INITIALIZING entry for its (message_id, index). Recovered
	// locally by dropping the fragment; never surfaced.
	ToolCallOrphanArg Kind = "tool_call_orphan_arg"

	// ToolCallInvalidJson marks a tool call whose argument buffer is
	// non-empty at the end of its enclosing message but fails strict JSON
	// parsing. Surfaced as a ToolCall result_error event.
	ToolCallInvalidJson Kind = "tool_call_invalid_json"

	// ChannelFilterRejected marks a channel value dropped by a
	// user-supplied filter predicate. Recovered locally; never surfaced.
	ChannelFilterRejected Kind = "channel_filter_rejected"

	// RuntimeFailure marks an error raised by the consumed runtime
	// iterator itself. Terminal: ends the event sequence.
	RuntimeFailure Kind = "runtime_failure"
)

// Error is the concrete error type carrying a Kind, a human-readable
// message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New constructs an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error that chains an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
