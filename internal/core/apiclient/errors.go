package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tells network-level failures apart from HTTP-level failures.
type Kind int

const (
	// KindNetwork means no response was received (refused, DNS, timeout).
	KindNetwork Kind = iota
	// KindHTTP means the backend answered with an error status.
	KindHTTP
)

// MessageNetwork is reported when the backend could not be reached.
const MessageNetwork = "could not reach server"

var (
	// ErrUnauthorized matches any *Error carrying a 401 status.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches any *Error carrying a 404 status.
	ErrNotFound = errors.New("not found")
	// ErrForbidden matches any *Error carrying a 403 status.
	ErrForbidden = errors.New("forbidden")
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "invalid request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not found",
	http.StatusInternalServerError: "server error",
}

// MessageForStatus maps a backend status code to the message shown to users.
func MessageForStatus(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Error: %d", status)
}

// Error is the normalized failure of a backend call.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Detail is the raw backend error message, when the body carried one.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers test status classes with errors.Is.
func (e *Error) Is(target error) bool {
	if e.Kind != KindHTTP {
		return false
	}
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// UserMessage extracts the human readable message from err, falling back to a generic one.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "unexpected error"
}

// IsNetwork reports whether err is a backend network failure.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

func newNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MessageNetwork, Err: err}
}

func newHTTPError(status int, detail string) *Error {
	return &Error{Kind: KindHTTP, Status: status, Message: MessageForStatus(status), Detail: detail}
}
