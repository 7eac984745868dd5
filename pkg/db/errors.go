package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	sqlstateUniqueViolation      = "23505"
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// sqlstate extracts the Postgres SQLSTATE code from a driver error, whether
// it came through pgx or lib/pq. Empty for non-postgres errors.
func sqlstate(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// constraint extracts the violated constraint name, when the driver reports
// one.
func constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation reports whether the provided error is a unique violation.
// When constraintName is provided, the violated constraint must match. The
// message check at the end covers the sqlite driver used in tests, which has
// no SQLSTATE.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if sqlstate(err) == sqlstateUniqueViolation {
		return constraintName == "" || constraint(err) == constraintName
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsSerializationFailure reports whether the error is a transient transaction
// conflict worth retrying (Postgres SQLSTATE 40001/40P01).
func IsSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	switch sqlstate(err) {
	case sqlstateSerializationFailure, sqlstateDeadlockDetected:
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}
