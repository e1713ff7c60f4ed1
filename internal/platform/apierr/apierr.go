package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes returned to API clients. The wrapped cause is for
// logs only; store failures must never leak their cause to the caller.
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidFile    = "invalid_file"
	CodeNotFound       = "not_found"
	CodeStoreFailure   = "store_failure"
	CodeOrphanRisk     = "orphan_risk"
	CodeDownloadFailed = "download_failed"
	CodeUnauthorized   = "unauthorized"
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

func InvalidRequest(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidRequest, err)
}

func InvalidFile(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidFile, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func StoreFailure(err error) *Error {
	return New(http.StatusInternalServerError, CodeStoreFailure, err)
}

// OrphanRisk marks a failed create whose best-effort artifact cleanup also
// failed, leaving file(s) on disk with no row.
func OrphanRisk(err error) *Error {
	return New(http.StatusInternalServerError, CodeOrphanRisk, err)
}

func DownloadFailed(err error) *Error {
	return New(http.StatusNotFound, CodeDownloadFailed, err)
}

func Unauthorized(err error) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, err)
}

// CodeOf extracts the stable code from err, defaulting to store_failure for
// anything that is not an *Error.
func CodeOf(err error) (status int, code string) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status, ae.Code
	}
	return http.StatusInternalServerError, CodeStoreFailure
}
