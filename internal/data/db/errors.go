package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// failure (SQLSTATE 23505). Services use it to turn constraint races
// into their domain sentinels instead of surfacing a driver error.
func IsUniqueViolation(err error) bool {
	return isPgCode(err, "23505")
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// failure (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	return isPgCode(err, "23503")
}

func isPgCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.TrimSpace(pgErr.Code) == code
	}
	return false
}
