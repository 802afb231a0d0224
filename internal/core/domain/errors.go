package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrRowBusy            = errors.New("operation already in progress for this user")
	ErrNoActiveEdit       = errors.New("no edit in progress")
	ErrConfirmRequired    = errors.New("delete requires confirmation")
)

// ErrDirectoryUnavailable marks transport-level failures talking to the
// directory backend: no response was received at all.
var ErrDirectoryUnavailable = errors.New("Network error. Please check your connection and try again.")

// DirectoryError is a non-2xx response from the directory backend with
// its body already normalized to a single human-readable message.
type DirectoryError struct {
	StatusCode int
	Message    string
}

func (e *DirectoryError) Error() string { return e.Message }

// ValidationErrorSet maps a form field name to the message of the first
// rule it failed. It is recomputed on every submit attempt and never
// persisted.
type ValidationErrorSet map[string]string

func (v ValidationErrorSet) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return strings.Join(parts, "; ")
}

// AsValidation unwraps err into a ValidationErrorSet when it is one.
func AsValidation(err error) (ValidationErrorSet, bool) {
	var ves ValidationErrorSet
	if errors.As(err, &ves) {
		return ves, true
	}
	return nil, false
}
