package bitbucket

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForeignPage  = errors.New("next page link leaves the API host")
)

// HostError is returned for every failed call to the Bitbucket API.
type HostError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *HostError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: bitbucket responded %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

func statusError(op string, status int, body string) *HostError {
	var err error
	switch status {
	case http.StatusNotFound:
		err = ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		err = ErrUnauthorized
	default:
		err = errors.New(http.StatusText(status))
	}

	if body != "" {
		err = fmt.Errorf("%w: %s", err, body)
	}

	return &HostError{Op: op, StatusCode: status, Err: err}
}
