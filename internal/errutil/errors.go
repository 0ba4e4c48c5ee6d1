// Package errutil defines the error kinds the HTTP layer maps to responses.
//
// Every kind travels as the code of a github.com/samber/oops error, so context
// attached with With survives up to the controller that logs it.
package errutil

import (
	"fmt"
	"net/http"

	"github.com/samber/oops"
)

// Kind classifies a failure for callers.
type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindConflict        Kind = "CONFLICT"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindInternal        Kind = "INTERNAL"
)

// InvalidArgument reports missing or malformed input.
func InvalidArgument(msg string) error {
	return oops.Code(string(KindInvalidArgument)).Errorf("%s", msg)
}

// Conflict reports a duplicate identity.
func Conflict(msg string) error {
	return oops.Code(string(KindConflict)).Errorf("%s", msg)
}

// Unauthorized reports rejected credentials.
func Unauthorized(msg string) error {
	return oops.Code(string(KindUnauthorized)).Errorf("%s", msg)
}

// Unauthenticated reports a missing or invalid token.
func Unauthenticated(msg string) error {
	return oops.Code(string(KindUnauthenticated)).Errorf("%s", msg)
}

// Forbidden reports an authenticated caller lacking the required role.
func Forbidden(msg string) error {
	return oops.Code(string(KindForbidden)).Errorf("%s", msg)
}

// NotFound reports an unknown identifier or record.
func NotFound(msg string) error {
	return oops.Code(string(KindNotFound)).Errorf("%s", msg)
}

// Internal wraps a collaborator failure.
func Internal(err error, operation string) error {
	return oops.Code(string(KindInternal)).With("operation", operation).Wrap(err)
}

// KindOf returns the kind carried by err. Errors without a kind are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return KindInternal
	}
	switch kind := Kind(fmt.Sprint(oopsErr.Code())); kind {
	case KindInvalidArgument, KindConflict, KindUnauthorized, KindUnauthenticated,
		KindForbidden, KindNotFound:
		return kind
	default:
		return KindInternal
	}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to the response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidArgument, KindConflict, KindUnauthorized, KindNotFound:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to return to clients. Internal failures
// never expose their cause.
func PublicMessage(err error) string {
	if KindOf(err) == KindInternal {
		return "Internal server error"
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		return oopsErr.Error()
	}
	return err.Error()
}
