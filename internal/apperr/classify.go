package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Stage inspects err and either resolves it to a classified error (ok=true)
// or passes it on to the next stage.
type Stage func(err error) (*Error, bool)

// Classifier runs its stages in order. The first stage that resolves the
// error wins; if none does, the fallback stage produces a 500.
type Classifier struct {
	stages []Stage
	// ExposeDetail controls whether the fallback 500 carries the raw error
	// text. It must be false in production.
	ExposeDetail bool
}

// NewClassifier returns the standard storage → domain → fallback chain.
func NewClassifier(exposeDetail bool) *Classifier {
	return &Classifier{
		stages:       []Stage{StorageStage, DomainStage},
		ExposeDetail: exposeDetail,
	}
}

// Classify maps err to a classified error. It never returns nil for a
// non-nil err.
func (c *Classifier) Classify(err error) *Error {
	if err == nil {
		return nil
	}
	for _, st := range c.stages {
		if ae, ok := st(err); ok {
			return ae
		}
	}
	return c.fallback(err)
}

func (c *Classifier) fallback(err error) *Error {
	out := &Error{
		Kind:   KindUnclassified,
		Status: http.StatusInternalServerError,
		Msg:    "Internal Server Error",
		Err:    err,
	}
	if c.ExposeDetail {
		out.Detail = err.Error()
	}
	return out
}

// DomainStage passes through errors raised explicitly by the service layer.
func DomainStage(err error) (*Error, bool) {
	return As(err)
}

// Postgres SQLSTATE codes recognised by StorageStage.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNumericValueOutOfRange    = "22003"
	pgInvalidRowCountInLimit    = "2201W"
	pgInvalidRowCountInOffset   = "2201X"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
	pgUndefinedColumn           = "42703"
)

// StorageStage maps well-known driver failures (Postgres via pgconn, SQLite
// via its constraint messages) to classified errors. Unknown failures pass
// through untouched, and so do errors that are already classified: their
// text may echo client input and must not be sniffed.
func StorageStage(err error) (*Error, bool) {
	if _, ok := As(err); ok {
		return nil, false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPostgres(err, pgErr)
	}
	return fromSQLite(err)
}

func fromPostgres(err error, pgErr *pgconn.PgError) (*Error, bool) {
	switch pgErr.Code {
	case pgInvalidTextRepresentation, pgNumericValueOutOfRange:
		return &Error{Kind: KindInvalidDataType, Status: http.StatusBadRequest, Msg: "Invalid Data Format", Detail: pgErr.Message, Err: err}, true
	case pgNotNullViolation:
		return &Error{Kind: KindMissingRequiredInformation, Status: http.StatusBadRequest, Msg: "Missing Required Information", Detail: pgErr.ColumnName, Err: err}, true
	case pgForeignKeyViolation:
		return &Error{Kind: KindForeignKeyViolation, Status: http.StatusBadRequest, Msg: "Foreign Key Violation", Detail: pgErr.Detail, Err: err}, true
	case pgUniqueViolation:
		return &Error{Kind: KindAlreadyExists, Status: http.StatusConflict, Msg: "Already Exists", Detail: pgErr.Detail, Err: err}, true
	case pgUndefinedColumn:
		return &Error{Kind: KindInvalidSortQuery, Status: http.StatusBadRequest, Msg: "Invalid Sort Query", Detail: pgErr.Message, Err: err}, true
	case pgInvalidRowCountInLimit, pgInvalidRowCountInOffset:
		return &Error{Kind: KindInvalidQueryValue, Status: http.StatusBadRequest, Msg: "Invalid Query Value", Detail: pgErr.Message, Err: err}, true
	}
	return nil, false
}

// fromSQLite recognises the pure-Go SQLite driver's error text, e.g.
// "constraint failed: FOREIGN KEY constraint failed (787)".
func fromSQLite(err error) (*Error, bool) {
	msg := err.Error()
	low := strings.ToLower(msg)
	switch {
	case strings.Contains(low, "foreign key constraint failed"):
		return &Error{Kind: KindForeignKeyViolation, Status: http.StatusBadRequest, Msg: "Foreign Key Violation", Detail: msg, Err: err}, true
	case strings.Contains(low, "not null constraint failed"):
		return &Error{Kind: KindMissingRequiredInformation, Status: http.StatusBadRequest, Msg: "Missing Required Information", Detail: afterColon(msg, "NOT NULL constraint failed:"), Err: err}, true
	case strings.Contains(low, "unique constraint failed"):
		return &Error{Kind: KindAlreadyExists, Status: http.StatusConflict, Msg: "Already Exists", Detail: msg, Err: err}, true
	case strings.Contains(low, "no such column"):
		return &Error{Kind: KindInvalidSortQuery, Status: http.StatusBadRequest, Msg: "Invalid Sort Query", Detail: msg, Err: err}, true
	case strings.Contains(low, "datatype mismatch"):
		return &Error{Kind: KindInvalidDataType, Status: http.StatusBadRequest, Msg: "Invalid Data Format", Detail: msg, Err: err}, true
	}
	return nil, false
}

// afterColon returns the column list that follows marker in msg, or msg
// itself when the marker is absent.
func afterColon(msg, marker string) string {
	i := strings.Index(msg, marker)
	if i < 0 {
		return msg
	}
	rest := strings.TrimSpace(msg[i+len(marker):])
	if j := strings.Index(rest, " ("); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
