// Package postgres provides PostgreSQL-backed implementations of the
// persistence interfaces in internal/store.
package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation. This is used to detect when an insert loses a race
// against a concurrent insert of the same unique key.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key constraint violation, e.g. linking a favorite to a user that does not
// exist.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
