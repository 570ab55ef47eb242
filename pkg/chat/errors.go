package chat

import (
	"fmt"

	"github.com/pkg/errors"
)

// RecvErrorKind classifies why Frame.Recv failed.
type RecvErrorKind int

const (
	// RecvIO covers transport-level failures: closed stream, read error.
	RecvIO RecvErrorKind = iota
	// RecvUTF8 means the frame body was not valid UTF-8.
	RecvUTF8
	// RecvJSON means the body was valid UTF-8 but not a well-formed or
	// tag-valid Message.
	RecvJSON
)

func (k RecvErrorKind) String() string {
	switch k {
	case RecvIO:
		return "io"
	case RecvUTF8:
		return "utf8"
	case RecvJSON:
		return "json"
	default:
		return "unknown"
	}
}

// RecvError is returned by Frame.Recv. It wraps the underlying cause so
// callers can still errors.Is/errors.As through to io.EOF or a
// *json.SyntaxError.
type RecvError struct {
	Kind  RecvErrorKind
	cause error
}

func newRecvError(kind RecvErrorKind, cause error) *RecvError {
	return &RecvError{Kind: kind, cause: errors.WithStack(cause)}
}

func (e *RecvError) Error() string {
	return fmt.Sprintf("chat: recv failed (%s): %v", e.Kind, e.cause)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *RecvError) Unwrap() error { return e.cause }

// SendErrorKind classifies why Frame.Send failed.
type SendErrorKind int

const (
	// SendIO covers transport-level write failures.
	SendIO SendErrorKind = iota
	// SendJSON means the Message failed to serialize. Unreachable for any
	// value produced by this package's constructors; kept so the kind set
	// stays symmetric with RecvErrorKind.
	SendJSON
	// SendOverflow means the serialized body exceeds 65535 bytes and was
	// never written to the wire.
	SendOverflow
)

func (k SendErrorKind) String() string {
	switch k {
	case SendIO:
		return "io"
	case SendJSON:
		return "json"
	case SendOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// SendError is returned by Frame.Send.
type SendError struct {
	Kind  SendErrorKind
	cause error
}

func newSendError(kind SendErrorKind, cause error) *SendError {
	return &SendError{Kind: kind, cause: errors.WithStack(cause)}
}

func (e *SendError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("chat: send failed (%s)", e.Kind)
	}
	return fmt.Sprintf("chat: send failed (%s): %v", e.Kind, e.cause)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *SendError) Unwrap() error { return e.cause }

// ErrOverflow is returned (wrapped in a *SendError) when a Message would
// serialize to a body longer than 65535 bytes.
var ErrOverflow = errors.New("chat: message body exceeds 65535 bytes")
