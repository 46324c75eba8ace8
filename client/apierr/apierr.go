// Package apierr carries the uniform error shape the bookstore backend
// returns for failed requests.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the backend's error envelope. Status holds the HTTP status of
// the failed request, or 0 when the request never reached the backend.
type Error struct {
	Err     error  `json:"-"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(msg string, status int) *Error {
	return &Error{Message: msg, Status: status}
}

func Wrap(err error, msg string, status int) *Error {
	return &Error{Err: err, Message: msg, Status: status}
}

// From recovers the envelope from anywhere in an error chain.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Status reports the HTTP status carried by err, or 0 when err carries none.
func Status(err error) int {
	if e, ok := From(err); ok {
		return e.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return Status(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return Status(err) == http.StatusUnauthorized
}
