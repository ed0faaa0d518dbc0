package errors

import "net/http"

// Kind classifies engine precondition failures. Handlers map them to
// status codes via the embedded StatusCode, tests assert on Kind.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindForbidden        Kind = "forbidden"
	KindInvalidState     Kind = "invalid_state"
	KindConflict         Kind = "conflict"
	KindCapacityExceeded Kind = "capacity_exceeded"
	KindDeadlinePassed   Kind = "deadline_passed"
)

// default error is internal service error at handler level
// if error has different semantics use one of the constructors below
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, StatusCode: http.StatusNotFound}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message, StatusCode: http.StatusForbidden}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message, StatusCode: http.StatusConflict}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message, StatusCode: http.StatusConflict}
}

func CapacityExceeded(message string) *Error {
	return &Error{Kind: KindCapacityExceeded, Message: message, StatusCode: http.StatusConflict}
}

func DeadlinePassed(message string) *Error {
	return &Error{Kind: KindDeadlinePassed, Message: message, StatusCode: http.StatusGone}
}

// KindOf returns the Kind of err, or "" for plain errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	if _, ok := err.(T); ok {
		return true
	}
	return false
}
