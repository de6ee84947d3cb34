// Package seekers manages the people who consult the reader:
// registration on first contact, identity refresh, admin flags.
// models.go describes the seekers table rows.
package seekers

import "time"

// Seeker is one registered user of the reader.
// Created automatically the first time a user talks to the bot.
type Seeker struct {
	ID        int64     `db:"id"`         // auto-increment row id
	UserID    int64     `db:"user_id"`    // Telegram user ID (unique)
	Username  string    `db:"username"`   // @username, may be empty
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"` // may be empty
	IsAdmin   bool      `db:"is_admin"`
	IsBlocked bool      `db:"is_blocked"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DisplayName returns the name to show in messages and admin lists:
// the @username when present, otherwise first + last name.
func (s *Seeker) DisplayName() string {
	if s.Username != "" {
		return "@" + s.Username
	}
	name := s.FirstName
	if s.LastName != "" {
		name += " " + s.LastName
	}
	return name
}
