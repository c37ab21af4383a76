package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := &Session{UserID: "u1", Status: StatusIdle}
	assert.False(t, s.Active())

	kind := ActivityKind{Name: "smoke", Label: "🚬 Smoke Break", LimitMinutes: 5}
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	s.Begin("g1", "An", kind, now)

	assert.True(t, s.Active())
	assert.Equal(t, "smoke", s.Kind)
	assert.Equal(t, 5, s.LimitMinutes)
	assert.Equal(t, uint64(1), s.Seq)
	assert.Equal(t, now.Add(5*time.Minute), s.Deadline())

	s.Reset()
	assert.False(t, s.Active())
	assert.Equal(t, "u1", s.UserID)
	assert.Nil(t, s.StartedAt)

	// the next instance keeps counting
	s.Begin("g1", "An", kind, now.Add(time.Hour))
	assert.Equal(t, uint64(2), s.Seq)
}

func TestCloseEntryBoundaries(t *testing.T) {
	started := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	kind := ActivityKind{Name: "smoke", Label: "🚬 Smoke Break", LimitMinutes: 5}

	cases := []struct {
		name      string
		elapsed   time.Duration
		violation bool
		overage   float64
	}{
		{"well under", 2 * time.Minute, false, 0},
		{"exactly at limit", 5 * time.Minute, false, 0},
		{"just over", 5*time.Minute + 30*time.Second, true, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Session{UserID: "u1", Status: StatusIdle}
			s.Begin("g1", "An", kind, started)

			e := CloseEntry(s, started.Add(tc.elapsed), false)
			assert.Equal(t, tc.violation, e.Violation)
			assert.InDelta(t, tc.overage, e.OverageMinutes, 1e-9)
			assert.InDelta(t, tc.elapsed.Minutes(), e.DurationMinutes, 1e-9)
			assert.Equal(t, "20260829", e.Day)
			assert.Equal(t, started, e.StartedAt)
		})
	}
}

func TestCloseEntryDayFollowsStart(t *testing.T) {
	// an activity crossing midnight belongs to the day it started
	started := time.Date(2026, 8, 29, 23, 58, 0, 0, time.UTC)
	s := &Session{UserID: "u1", Status: StatusIdle}
	s.Begin("g1", "An", ActivityKind{Name: "meal", LimitMinutes: 10}, started)

	e := CloseEntry(s, started.Add(6*time.Minute), true)
	assert.Equal(t, "20260829", e.Day)
	assert.True(t, e.Forced)
	require.False(t, e.Violation)
}
