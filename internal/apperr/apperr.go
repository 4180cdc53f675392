// Package apperr defines the tagged error variants used across the
// service layer. Handlers map Kind to an HTTP status centrally instead of
// matching on message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindAlreadyProcessed  Kind = "already_processed"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Validation(msg string) *Error { return New(KindValidation, msg) }

// NotFound is also returned for resources the caller does not own, so
// existence is not leaked.
func NotFound(what string) *Error { return New(KindNotFound, what+" not found") }

func InsufficientFunds() *Error {
	return New(KindInsufficientFunds, "insufficient available balance")
}

func AlreadyProcessed(what string) *Error {
	return New(KindAlreadyProcessed, what+" already processed")
}

// KindOf extracts the Kind from err, defaulting to internal for anything
// untagged.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to its HTTP status code. State errors (already
// processed, insufficient funds) are client errors per the API contract.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInsufficientFunds, KindAlreadyProcessed:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
