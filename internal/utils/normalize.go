package utils

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases an email address.
// Every lookup and uniqueness check goes through this; it is idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
