package models

import (
	"time"
)

// SessionStatus is the per-user state machine state.
type SessionStatus string

const (
	StatusIdle   SessionStatus = "idle"
	StatusActive SessionStatus = "active"
)

// Session is one user's current, possibly-absent activity. A row is created
// the first time a user starts an activity and is reused for the member's
// lifetime; closing an activity resets the row to idle, it is never deleted.
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      string        `gorm:"uniqueIndex;not null" json:"user_id"`
	GroupID     string        `gorm:"index" json:"group_id"`
	DisplayName string        `json:"display_name"`
	Status      SessionStatus `gorm:"default:idle" json:"status"`

	// Set while active; Kind and LimitMinutes are snapshotted from the
	// catalog at start so a restored session keeps the limit it began with.
	Kind         string     `json:"kind"`
	LimitMinutes int        `json:"limit_minutes"`
	StartedAt    *time.Time `json:"started_at"`

	// Seq increments on every start and identifies the session instance.
	// A countdown watcher holds the Seq it was spawned for and goes silent
	// if the row has moved on to a later instance.
	Seq uint64 `json:"seq"`
}

// Active reports whether the user is currently away on an activity.
func (s *Session) Active() bool {
	return s.Status == StatusActive && s.StartedAt != nil
}

// Deadline returns the instant the current activity must end by.
// Only meaningful while the session is active.
func (s *Session) Deadline() time.Time {
	return s.StartedAt.Add(time.Duration(s.LimitMinutes) * time.Minute)
}

// Begin transitions the row to active for a new activity instance.
func (s *Session) Begin(groupID, displayName string, kind ActivityKind, now time.Time) {
	start := now
	s.GroupID = groupID
	s.DisplayName = displayName
	s.Status = StatusActive
	s.Kind = kind.Name
	s.LimitMinutes = kind.LimitMinutes
	s.StartedAt = &start
	s.Seq++
}

// Reset returns the row to idle, keeping identity fields for the next start.
func (s *Session) Reset() {
	s.Status = StatusIdle
	s.Kind = ""
	s.LimitMinutes = 0
	s.StartedAt = nil
}
