// Package repository implements data access on gorm. Storage errors are
// translated here into the apperr classes: gorm.ErrRecordNotFound becomes
// ErrNotFound and a Postgres unique violation becomes ErrConflict, so the
// service layer never inspects driver errors.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"reviewhub/internal/api/apperr"
)

// SQLSTATE 23505
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// translate maps storage errors to the shared taxonomy. Unknown errors pass
// through untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case isUniqueViolation(err), errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict
	}
	return err
}
