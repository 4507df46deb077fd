package persistence

import (
	"errors"
	"strings"

	"github.com/motodms/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE class 23 integrity constraint violations.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
)

// translatePostgresError maps low-level postgres constraint violations to
// domain-level database errors so handlers can name the offending field
// instead of leaking driver internals.
//
// The GORM connection rides on jackc/pgx, which reports violations as
// *pgconn.PgError. *pq.Error is matched as well for code paths using the
// lib/pq driver directly.
func translatePostgresError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return translateConstraintViolation(pgErr.Code, pgErr.ConstraintName, pgErr.ColumnName, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return translateConstraintViolation(string(pqErr.Code), string(pqErr.Constraint), string(pqErr.Column), err)
	}

	return err
}

func translateConstraintViolation(code, constraint, column string, err error) error {
	field := constraintField(constraint)

	switch code {
	case codeUniqueViolation:
		return shared.NewDatabaseError("DUPLICATE_KEY", "A record with this value already exists", field, err)
	case codeForeignKeyViolation:
		return shared.NewDatabaseError("FOREIGN_KEY_VIOLATION", "Referenced record does not exist", field, err)
	case codeNotNullViolation:
		return shared.NewDatabaseError("NOT_NULL_VIOLATION", "A required value is missing", column, err)
	case codeCheckViolation:
		return shared.NewDatabaseError("CHECK_VIOLATION", "A value violates a database constraint", field, err)
	default:
		return err
	}
}

// constraintField normalizes a constraint name like "idx_motorcycles_vin" or
// "payments_account_id_fkey" into something presentable to API clients.
func constraintField(constraint string) string {
	name := strings.TrimPrefix(constraint, "idx_")
	name = strings.TrimSuffix(name, "_key")
	name = strings.TrimSuffix(name, "_fkey")
	return name
}
