package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nmthang/awaybot/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })
	return conn
}

func activeSession(userID string, started time.Time) *models.Session {
	s := &models.Session{UserID: userID, Status: models.StatusIdle}
	s.Begin("g1", "An", models.ActivityKind{Name: "smoke", Label: "🚬 Smoke Break", LimitMinutes: 5}, started)
	return s
}

func TestSaveAndRestoreSessions(t *testing.T) {
	svc := NewSessionService(testDB(t))

	started := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	sess := activeSession("u1", started)
	require.NoError(t, svc.SaveSession(sess))

	idle := &models.Session{UserID: "u0", Status: models.StatusIdle}
	require.NoError(t, svc.SaveSession(idle))

	restored, err := svc.RestoreSessions()
	require.NoError(t, err)
	require.Len(t, restored, 2)

	assert.Equal(t, "u0", restored[0].UserID)
	assert.False(t, restored[0].Active())

	got := restored[1]
	assert.True(t, got.Active())
	assert.Equal(t, "smoke", got.Kind)
	assert.Equal(t, 5, got.LimitMinutes)
	assert.Equal(t, uint64(1), got.Seq)
	require.NotNil(t, got.StartedAt)
	assert.True(t, got.StartedAt.Equal(started), "restored start %v != %v", got.StartedAt, started)
	assert.True(t, got.Deadline().Equal(started.Add(5*time.Minute)))
}

func TestSaveSessionUpsertsSameRow(t *testing.T) {
	svc := NewSessionService(testDB(t))

	started := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	sess := activeSession("u1", started)
	require.NoError(t, svc.SaveSession(sess))

	sess.Reset()
	require.NoError(t, svc.SaveSession(sess))

	restored, err := svc.RestoreSessions()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.False(t, restored[0].Active())
}

func TestCloseSessionWritesEntryAndResetTogether(t *testing.T) {
	conn := testDB(t)
	svc := NewSessionService(conn)
	ledger := NewLedgerService(conn)

	started := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	sess := activeSession("u1", started)
	require.NoError(t, svc.SaveSession(sess))

	entry := models.CloseEntry(sess, started.Add(6*time.Minute), true)
	sess.Reset()
	require.NoError(t, svc.CloseSession(sess, &entry))

	restored, err := svc.RestoreSessions()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.False(t, restored[0].Active())

	entries, err := ledger.Query("g1", "20260829")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Violation)
	assert.True(t, entries[0].Forced)
	assert.InDelta(t, 6.0, entries[0].DurationMinutes, 1e-9)
	assert.True(t, entries[0].StartedAt.Equal(started))
}

func TestDailyTotals(t *testing.T) {
	conn := testDB(t)
	svc := NewSessionService(conn)

	write := func(userID string, started time.Time, minutes int) {
		sess := activeSession(userID, started)
		entry := models.CloseEntry(sess, started.Add(time.Duration(minutes)*time.Minute), false)
		sess.Reset()
		require.NoError(t, svc.CloseSession(sess, &entry))
	}

	day := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	write("u1", day, 3)
	write("u1", day.Add(time.Hour), 4)
	write("u2", day, 2)
	write("u1", day.AddDate(0, 0, 1), 9) // next day, excluded

	totals, err := svc.DailyTotals("u1", "20260829")
	require.NoError(t, err)
	assert.InDelta(t, 7.0, totals.TotalMinutes, 1e-9)
	assert.Equal(t, 2, totals.ActivityCount)

	empty, err := svc.DailyTotals("u3", "20260829")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.TotalMinutes)
	assert.Equal(t, 0, empty.ActivityCount)
}

func TestLedgerQueryInCloseOrder(t *testing.T) {
	conn := testDB(t)
	svc := NewSessionService(conn)
	ledger := NewLedgerService(conn)

	day := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	for i, userID := range []string{"c", "a", "b"} {
		sess := activeSession(userID, day.Add(time.Duration(i)*time.Minute))
		entry := models.CloseEntry(sess, day.Add(time.Duration(i+2)*time.Minute), false)
		sess.Reset()
		require.NoError(t, svc.CloseSession(sess, &entry))
	}

	entries, err := ledger.Query("g1", "20260829")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].UserID)
	assert.Equal(t, "a", entries[1].UserID)
	assert.Equal(t, "b", entries[2].UserID)

	mine, err := ledger.QueryUser("a", "20260829")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].UserID)
}
