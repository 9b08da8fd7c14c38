// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rabbithttp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no route matched the request path
	ErrNotFound = errors.New("no route matched the request")

	// ErrMethodNotAllowed indicates that a route matched the path but not the method
	ErrMethodNotAllowed = errors.New("the request method is not allowed for this route")

	// ErrMissingHandler indicates that a route names a handler that was never registered
	ErrMissingHandler = errors.New("no handler is registered for the route")
)

// DefaultErrorStatus is used when no status could otherwise be
// determined for a non-nil error.
const DefaultErrorStatus = StatusInternalServerError

// StatusCoder is an optional interface that an error can implement to supply
// the response status associated with that error.
type StatusCoder interface {
	// StatusCode returns the status associated with this error
	StatusCode() Status
}

type statusErr struct {
	error
	status Status
}

func (se statusErr) StatusCode() Status {
	return se.status
}

func (se statusErr) Unwrap() error {
	return se.error
}

// UseStatus returns a new error object that associates an existing error
// with a response status.  The new error will implement StatusCoder and will have
// an Unwrap method as described in the errors package.
//
// If err is nil, this function immediately panics so as not to delay a panic
// until the returned error is used.
func UseStatus(err error, status Status) error {
	if err == nil {
		panic("cannot associate a nil error with a status")
	}

	return statusErr{
		error:  err,
		status: status,
	}
}

// ErrorStatuser is a strategy type for determining the status for an error.
type ErrorStatuser func(error) Status

// StatusFor provides a standard way of determining the response status associated
// with an error.  Logic is applied in the following order:
//
//   - If err is nil, StatusOK is returned
//   - If err implements StatusCoder with a valid status, that status is returned
//   - If err is ErrNotFound or ErrMethodNotAllowed, the matching status is returned
//   - If statuser is not nil and returns a valid status, that status is returned
//   - Otherwise, DefaultErrorStatus is returned
func StatusFor(err error, statuser ErrorStatuser) Status {
	var sc StatusCoder
	switch {
	case err == nil:
		return StatusOK

	case errors.As(err, &sc) && sc.StatusCode().Valid():
		return sc.StatusCode()

	case errors.Is(err, ErrNotFound):
		return StatusNotFound

	case errors.Is(err, ErrMethodNotAllowed):
		return StatusMethodNotAllowed

	case statuser != nil:
		if s := statuser(err); s.Valid() {
			return s
		}
	}

	return DefaultErrorStatus
}

// ConfigurationError indicates that the application was not wired correctly
// before a request arrived, e.g. a route names an unregistered handler.
type ConfigurationError struct {
	// Handler is the handler identifier that could not be resolved
	Handler string

	// Err is the underlying cause, typically ErrMissingHandler
	Err error
}

func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for handler [%s]: %s", ce.Handler, ce.Err)
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

// StatusCode always reports a server error
func (ce *ConfigurationError) StatusCode() Status {
	return StatusInternalServerError
}

// HandlerError wraps a failure returned by application code
type HandlerError struct {
	// Handler is the identifier of the handler that failed
	Handler string

	// Err is the error the handler returned
	Err error
}

func (he *HandlerError) Error() string {
	return fmt.Sprintf("handler [%s] failed: %s", he.Handler, he.Err)
}

func (he *HandlerError) Unwrap() error {
	return he.Err
}
