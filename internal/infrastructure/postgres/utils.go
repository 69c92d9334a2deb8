package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que representam contenda de lock/transação:
// 55P03 lock_not_available (lock_timeout estourado no FOR UPDATE),
// 40001 serialization_failure, 40P01 deadlock_detected.
// Todos viram ErrConcurrencyConflict para o caller, seguro para retry.
func isLockContention(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40001", "40P01":
			return true
		}
	}
	return false
}
