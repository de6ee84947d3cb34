// Package admin implements the admin panel behind password
// authentication.
// models.go describes sessions, login attempts and the dialog state.
package admin

import "time"

// AdminSession is an active administrator session.
type AdminSession struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt is one login attempt, kept for brute-force lockout.
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// AdminState is the in-memory dialog state for stepwise admin actions.
// The panel walks: pick action, pick seeker, enter the new counters.
type AdminState struct {
	State     string      // current step ("", "awaiting_password", ...)
	Data      interface{} // step context (selected seeker, pending values)
	ExpiresAt time.Time   // state expires after 5 minutes of inactivity
}

// Admin dialog states
const (
	StateNone             = ""
	StateAwaitingPassword = "awaiting_password"
	StateOverrideSelect   = "override_select"   // waiting for a seeker number
	StateOverrideCounters = "override_counters" // waiting for "<total> <streak>"
)
