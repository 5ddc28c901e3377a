// Package pgerrs translates driver level Postgres errors into domain errors.
// Both supported drivers are recognised: pgx (pgconn.PgError) and lib/pq
// (pq.Error), as well as gorm's own ErrDuplicatedKey.
package pgerrs

import (
	"errors"

	"fooddelivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// UniqueViolation reports whether err is a unique constraint violation and,
// when the driver knows it, the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return pqErr.Constraint, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// Field names the attribute a unique constraint protects, together with the
// offending value.
type Field struct {
	Name  string
	Value any
}

// Conflict turns a unique violation into *errs.ConflictError. fields maps
// constraint names to the attribute they guard; fallback is used when the
// constraint is unknown. Any other error is returned unchanged.
func Conflict(err error, entity string, fields map[string]Field, fallback Field) error {
	constraint, ok := UniqueViolation(err)
	if !ok {
		return err
	}

	field, known := fields[constraint]
	if !known {
		field = fallback
	}
	return errs.NewConflictErrorWithCause(entity, field.Name, field.Value, err)
}
