package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Kind classifies a service failure for the transport layer.
type Kind int

const (
	// KindInfrastructure covers unreachable storage and failed queries.
	KindInfrastructure Kind = iota
	// KindValidation is missing or malformed input.
	KindValidation
	// KindConflict is a duplicate natural key, or a delete blocked by dependents.
	KindConflict
	// KindReference is a foreign key pointing at a row that does not exist.
	KindReference
	// KindNotFound is a delete target that does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindReference:
		return "reference"
	case KindNotFound:
		return "not_found"
	default:
		return "infrastructure"
	}
}

// HTTPStatus returns the status code a failure of this kind is reported with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindReference:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by every service operation that fails.
type Error struct {
	// Kind selects the status code.
	Kind Kind
	// Op is the operation that failed (e.g. "CreateInvoice").
	Op string
	// Message is safe to return to API callers.
	Message string
	// Details carries per-field violations for validation failures.
	Details map[string]string
	// Err is the underlying driver error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("services: %s failed: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("services: %s failed: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindInfrastructure for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInfrastructure
}

func infraError(op string, err error) *Error {
	return &Error{Kind: KindInfrastructure, Op: op, Message: err.Error(), Err: err}
}

// isDuplicate reports a unique constraint violation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKey reports a foreign key violation, either a missing parent on
// insert or existing children on delete. SQLite reports RESTRICT actions
// through the trigger constraint code rather than the foreign key one.
func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return true
		}
		return liteErr.ExtendedCode == sqlite3.ErrConstraintTrigger &&
			strings.Contains(err.Error(), "FOREIGN KEY")
	}
	return false
}
