package persist

import (
	"errors"
	"strings"
)

// errorCoder is implemented by database errors that provide string
// error codes (pq.Error, pgx).
type errorCoder interface {
	Code() string
}

// errorNumberer is implemented by database errors that provide numeric
// error codes (mysql.MySQLError).
type errorNumberer interface {
	Number() uint16
}

// sqlStateError is implemented by errors that provide SQLSTATE codes.
type sqlStateError interface {
	SQLState() string
}

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row.
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row.
	mysqlCheckConstraintViolate = 3819
)

// IsConstraintError reports whether the error resulted from a database
// constraint violation.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// IsUniqueConstraintError reports whether the error resulted from a
// uniqueness constraint violation.
func IsUniqueConstraintError(err error) bool {
	return matchConstraint(err, pgUniqueViolation, []uint16{mysqlDuplicateEntry},
		"Error 1062",                 // MySQL (string fallback)
		"violates unique constraint", // Postgres (string fallback)
		"UNIQUE constraint failed",   // SQLite
	)
}

// IsForeignKeyConstraintError reports whether the error resulted from a
// foreign-key constraint violation.
func IsForeignKeyConstraintError(err error) bool {
	return matchConstraint(err, pgForeignKeyViolation, []uint16{mysqlForeignKeyParent, mysqlForeignKeyChild},
		"Error 1451",                      // MySQL (parent row)
		"Error 1452",                      // MySQL (child row)
		"violates foreign key constraint", // Postgres
		"FOREIGN KEY constraint failed",   // SQLite
	)
}

// IsCheckConstraintError reports whether the error resulted from a
// check constraint violation.
func IsCheckConstraintError(err error) bool {
	return matchConstraint(err, pgCheckViolation, []uint16{mysqlCheckConstraintViolate},
		"Error 3819",                // MySQL
		"violates check constraint", // Postgres
		"CHECK constraint failed",   // SQLite
	)
}

// matchConstraint checks the error chain for a known SQLSTATE code, a
// MySQL error number, or, for drivers that expose neither, a message
// substring.
func matchConstraint(err error, sqlstate string, numbers []uint16, substrings ...string) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[sqlStateError](err); ok && e.SQLState() == sqlstate {
		return true
	}
	if e, ok := asError[errorCoder](err); ok && e.Code() == sqlstate {
		return true
	}
	if e, ok := asError[errorNumberer](err); ok {
		for _, n := range numbers {
			if e.Number() == n {
				return true
			}
		}
	}
	msg := err.Error()
	for _, sub := range substrings {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

// asError attempts to extract an error implementing interface T from
// the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}
