// Package apperr defines the classified error type shared by the service and
// HTTP layers, together with the staged classifier that turns raw failures
// (driver errors, domain errors, anything else) into a stable
// (status, kind, message) triple.
//
// A *Error is "classified": once a failure has been mapped to one, no later
// stage rewrites it. Handlers never inspect driver errors directly; they call
// Classify and render the result.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a stable, machine-readable error category. Clients may branch on it.
type Kind string

const (
	KindInvalidDataType            Kind = "invalid_data_type"
	KindMissingRequiredInformation Kind = "missing_required_information"
	KindForeignKeyViolation        Kind = "foreign_key_violation"
	KindInvalidSortQuery           Kind = "invalid_sort_query"
	KindInvalidQueryValue          Kind = "invalid_query_value"
	KindAlreadyExists              Kind = "already_exists"
	KindNotFound                   Kind = "not_found"
	KindMethodNotAllowed           Kind = "method_not_allowed"
	KindRouteNotExist              Kind = "route_not_exist"
	KindUnclassified               Kind = "internal_error"
)

// Error is a failure already mapped to an HTTP status and a human-readable
// message. Detail carries optional diagnostic context (e.g. the constraint
// detail of a foreign-key violation); Err is the wrapped cause, if any.
type Error struct {
	Kind   Kind
	Status int
	Msg    string
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Msg + ": " + e.Detail
	}
	return e.Msg
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same kind and message, so
// that package-level error values can be matched with errors.Is even after
// being wrapped.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Status == t.Status && e.Msg == t.Msg
}

// New returns a classified error without a cause.
func New(kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Msg: msg}
}

// Wrap returns a classified error that keeps err as its cause.
func Wrap(err error, kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Msg: msg, Err: err}
}

// WithDetail returns a copy of e carrying detail.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Detail = detail
	return &cp
}

// As extracts a classified error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsKind reports whether err carries a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}

// Constructors for the request-shape kinds. The messages are part of the
// public API and must stay stable.

func InvalidDataType(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidDataType, Status: http.StatusBadRequest, Msg: "Invalid Data Format", Detail: fmt.Sprintf(format, args...)}
}

func InvalidSortQuery(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidSortQuery, Status: http.StatusBadRequest, Msg: "Invalid Sort Query", Detail: fmt.Sprintf(format, args...)}
}

func InvalidQueryValue(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidQueryValue, Status: http.StatusBadRequest, Msg: "Invalid Query Value", Detail: fmt.Sprintf(format, args...)}
}

// NotFound returns a 404 for a specific missing entity.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Msg: msg}
}

// Routing errors rendered by the router fallbacks.
var (
	ErrRouteNotExist    = New(KindRouteNotExist, http.StatusNotFound, "Route Does Not Exist")
	ErrMethodNotAllowed = New(KindMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed")
)
