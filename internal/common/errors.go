// Package common — errors.go defines the sentinel errors shared by all
// features. Handlers match on these to decide what the user should see;
// repositories translate driver errors into them so the services never
// leak pgx details upward.
package common

import "errors"

// Journey engine errors
var (
	// ErrProfileNotFound — the user has no journey profile yet.
	// Not retryable; the caller decides whether to bootstrap one.
	ErrProfileNotFound = errors.New("journey profile not found")
	// ErrStoreUnavailable — transient read/write failure against the store.
	// Surfaced as-is; retrying is the caller's business.
	ErrStoreUnavailable = errors.New("profile store unavailable")
	// ErrInvalidDate — malformed calendar date input (expected YYYY-MM-DD).
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrNegativeValue — an override tried to write a negative counter.
	ErrNegativeValue = errors.New("counters must be non-negative")
)

// Admin errors
var (
	// ErrNotAdmin — the user is not an administrator
	ErrNotAdmin = errors.New("you are not an administrator")
	// ErrWrongPassword — wrong admin password
	ErrWrongPassword = errors.New("wrong password")
	// ErrTooManyAttempts — too many failed login attempts
	ErrTooManyAttempts = errors.New("too many attempts, wait an hour")
	// ErrSessionExpired — admin session expired
	ErrSessionExpired = errors.New("session expired, log in again")
)
