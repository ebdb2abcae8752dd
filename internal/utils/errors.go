package utils

import "strings"

// IsUniqueConstraint reports whether err is a unique-constraint
// violation from either backing driver.
func IsUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "SQLSTATE 23505") || // postgres
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
