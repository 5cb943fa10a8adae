package db

import "strings"

// IsUniqueViolation reports whether the error references a Postgres unique
// violation, e.g. the (user_id, product_id) constraint on cart_items. When
// constraintName is provided, the helper looks for that constraint's text
// in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
