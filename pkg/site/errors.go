package site

import (
	"errors"
	"net/http"
)

// ErrMissingEngine and ErrMissingStore are returned by New when a required
// dependency is not configured.
var (
	ErrMissingEngine = errors.New("site: template engine not configured")
	ErrMissingStore  = errors.New("site: content store not configured")
)

// HTTPError is an error that maps to an HTTP status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with the status code it should produce.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func statusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
