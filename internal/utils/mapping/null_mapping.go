package mapping

import "database/sql"

// NullString converts an optional identifier to its nullable column form.
// An empty string means the reference is unset.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// FromNullString converts a nullable column back to an optional identifier.
func FromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
