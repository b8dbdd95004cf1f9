package repository

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateEmail is returned by Create when another profile already
	// owns the case-folded email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned by Update when the record is gone.
	ErrNotFound = errors.New("profile not found")
)

// EmailKey normalizes an email for uniqueness checks and lookups.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
