package models

import (
	"time"
)

// DayFormat is the layout for per-day ledger keys, e.g. "20260829".
const DayFormat = "20060102"

// LedgerEntry is the immutable record of one closed activity. Entries are
// append-only and keyed by (group, day of start) for daily reporting.
type LedgerEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID      string `gorm:"index" json:"user_id"`
	GroupID     string `gorm:"index:idx_ledger_group_day" json:"group_id"`
	Day         string `gorm:"index:idx_ledger_group_day" json:"day"`
	DisplayName string `json:"display_name"`

	Kind         string    `json:"kind"`
	LimitMinutes int       `json:"limit_minutes"`
	StartedAt    time.Time `gorm:"not null" json:"started_at"`
	EndedAt      time.Time `gorm:"not null" json:"ended_at"`

	DurationMinutes float64 `json:"duration_minutes"`
	Violation       bool    `json:"violation"`
	OverageMinutes  float64 `json:"overage_minutes"`

	// Forced marks entries produced by the countdown engine rather than a
	// voluntary return.
	Forced bool `json:"forced"`
}

// CloseEntry builds the ledger entry for a session closing at endedAt.
// Duration exactly equal to the limit is not a violation.
func CloseEntry(s *Session, endedAt time.Time, forced bool) LedgerEntry {
	started := *s.StartedAt
	duration := endedAt.Sub(started).Minutes()
	limit := float64(s.LimitMinutes)
	overage := duration - limit
	if overage < 0 {
		overage = 0
	}
	return LedgerEntry{
		UserID:          s.UserID,
		GroupID:         s.GroupID,
		Day:             started.Format(DayFormat),
		DisplayName:     s.DisplayName,
		Kind:            s.Kind,
		LimitMinutes:    s.LimitMinutes,
		StartedAt:       started,
		EndedAt:         endedAt,
		DurationMinutes: duration,
		Violation:       duration > limit,
		OverageMinutes:  overage,
		Forced:          forced,
	}
}
