package db

import "strings"

// IsUniqueViolation reports whether the provided error references a duplicate
// key. When constraintName is provided, the helper looks for the constraint
// text in the error message. Both the Postgres and SQLite wording are
// recognized so repository callers behave the same under either driver.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
