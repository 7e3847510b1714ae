// Package result implements the tagged outcome every service operation
// returns. A result is in exactly one of three states: success carrying
// data, fail carrying an expected user-facing condition with its HTTP
// status, or error carrying an unexpected failure. Callers must branch on
// State and only read Data when the state is success.
package result

import "net/http"

type State int

const (
	StateSuccess State = iota
	StateFail
	StateError
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateFail:
		return "fail"
	default:
		return "error"
	}
}

type Result[T any] struct {
	state   State
	data    T
	message string
	status  int
	err     error
}

// OK wraps data in a success result.
func OK[T any](data T) Result[T] {
	return Result[T]{state: StateSuccess, data: data}
}

// Fail records an expected domain condition (validation, not-found,
// duplicate) together with the HTTP status it maps to.
func Fail[T any](message string, status int) Result[T] {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Result[T]{state: StateFail, message: message, status: status}
}

// Error records an unexpected failure caught at a service boundary.
// The wrapped error is logged server-side and never shown to clients.
func Error[T any](err error) Result[T] {
	return Result[T]{state: StateError, err: err, status: http.StatusInternalServerError}
}

// Of is the single conversion point from a (value, error) pair into a
// result: a nil error yields success, anything else becomes an error
// state. Services use it to keep repository errors from leaking past the
// service boundary as raw errors.
func Of[T any](data T, err error) Result[T] {
	if err != nil {
		return Error[T](err)
	}
	return OK(data)
}

func (r Result[T]) State() State { return r.state }

func (r Result[T]) Data() T { return r.data }

func (r Result[T]) Message() string { return r.message }

// Status is the HTTP status of a fail or error result. It is zero for
// success results; the controller picks the success status.
func (r Result[T]) Status() int { return r.status }

func (r Result[T]) Err() error { return r.err }
