package apierr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(err error) *Error {
	return New(http.StatusUnprocessableEntity, "validation_error", err)
}

func PermissionDenied(err error) *Error {
	return New(http.StatusForbidden, "permission_denied", err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, "not_found", err)
}

// Upstream wraps failures from external collaborators (data store,
// renderer, storage, mail). The cause is kept for the caller; nothing
// is retried on its behalf.
func Upstream(err error) *Error {
	return New(http.StatusBadGateway, "upstream_failure", err)
}
