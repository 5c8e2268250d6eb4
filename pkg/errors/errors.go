package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure by where it originated and how it is shown to the user
type Kind int

const (
	// KindValidation input rejected locally, before any backend call
	KindValidation Kind = iota + 1
	// KindService backend answered with a non-2xx status
	KindService
	// KindNetwork backend unreachable, timed out or answered with garbage
	KindNetwork
	// KindContent extracted PDF text missing or empty
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindService:
		return "service"
	case KindNetwork:
		return "network"
	case KindContent:
		return "content"
	default:
		return "unknown"
	}
}

// Error user-facing failure with a classification
type Error struct {
	Kind    Kind
	Op      string
	Status  int    // backend HTTP status, KindService only
	Field   string // offending input field, KindValidation only
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// RouteNotFound reports a 404 from the backend, as opposed to a connectivity failure
func (e *Error) RouteNotFound() bool {
	return e.Kind == KindService && e.Status == http.StatusNotFound
}

// Validation creates a validation error
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Service creates a backend status error; message is the backend's error text and may be empty
func Service(op string, status int, message string) *Error {
	return &Error{Kind: KindService, Op: op, Status: status, Message: message}
}

// Network wraps a transport failure
func Network(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Message: "backend unreachable", Err: err}
}

const msgMalformed = "malformed backend response"

// Malformed reports a response body that could not be decoded
func Malformed(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Message: msgMalformed, Err: err}
}

// Malformed reports whether the backend answered but the body could not be decoded
func (e *Error) Malformed() bool {
	return e.Kind == KindNetwork && e.Message == msgMalformed
}

// Content creates a content error
func Content(message string) *Error {
	return &Error{Kind: KindContent, Message: message}
}

// As extracts *Error from err
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// UserMessage the text to show for err; service errors without a backend message use fallback
func UserMessage(err error, fallback string) string {
	e, ok := As(err)
	if !ok {
		return fallback
	}
	switch e.Kind {
	case KindService:
		if e.Message != "" {
			return e.Message
		}
		return fallback
	case KindNetwork:
		return fallback
	default:
		if e.Message != "" {
			return e.Message
		}
		return fallback
	}
}

// WithFallback returns a service error carrying fallback when the backend gave no message.
// Other errors pass through unchanged.
func WithFallback(err error, fallback string) error {
	e, ok := As(err)
	if !ok || e.Kind != KindService || e.Message != "" {
		return err
	}
	cp := *e
	cp.Message = fallback
	return &cp
}
