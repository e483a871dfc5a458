package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Class 23 integrity-constraint violation codes we care about.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Concurrent writers racing on a natural key (duplicate email,
// duplicate meal slot) lose with this error, which repositories translate
// into the domain conflict sentinel.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
