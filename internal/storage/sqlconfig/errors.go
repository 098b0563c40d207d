package sqlconfig

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the lookup or the
	// conditional update affected nothing.
	ErrNotFound = errors.New("sqlconfig: record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("sqlconfig: duplicate record")
	// ErrOutOfRange is returned when a numeric value does not fit its column.
	ErrOutOfRange = errors.New("sqlconfig: value out of range")
)

const (
	pqUniqueViolation        = "23505"
	pqNumericValueOutOfRange = "22003"
)

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicate
		case pqNumericValueOutOfRange:
			return ErrOutOfRange
		}
	}
	return err
}
