package repositories

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUniqueViolation is returned when an insert trips a unique constraint.
// Callers must treat it as a conflict even when their pre-check passed,
// since a concurrent insert can win the race.
var ErrUniqueViolation = errors.New("unique constraint violation")

// isUniqueViolation reports whether err is a Postgres unique-violation error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
