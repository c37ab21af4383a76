package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmthang/awaybot/internal/models"
)

func sampleEntries() []models.LedgerEntry {
	day := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	return []models.LedgerEntry{
		{
			UserID: "u1", DisplayName: "An", Kind: "smoke", LimitMinutes: 5,
			StartedAt: day, EndedAt: day.Add(3 * time.Minute),
			DurationMinutes: 3,
		},
		{
			UserID: "u2", DisplayName: "Binh", Kind: "meal", LimitMinutes: 10,
			StartedAt: day, EndedAt: day.Add(12 * time.Minute),
			DurationMinutes: 12, Violation: true, OverageMinutes: 2, Forced: true,
		},
		{
			UserID: "u1", DisplayName: "An", Kind: "restroom-short", LimitMinutes: 10,
			StartedAt: day.Add(time.Hour), EndedAt: day.Add(time.Hour + 4*time.Minute),
			DurationMinutes: 4,
		},
	}
}

func TestAggregateByUser(t *testing.T) {
	totals := AggregateByUser(sampleEntries())
	require.Len(t, totals, 2)

	// sorted by total minutes descending
	assert.Equal(t, "u2", totals[0].UserID)
	assert.InDelta(t, 12.0, totals[0].TotalMinutes, 1e-9)
	assert.Equal(t, 1, totals[0].ActivityCount)
	assert.Equal(t, 1, totals[0].ViolationCount)

	assert.Equal(t, "u1", totals[1].UserID)
	assert.Equal(t, "An", totals[1].DisplayName)
	assert.InDelta(t, 7.0, totals[1].TotalMinutes, 1e-9)
	assert.Equal(t, 2, totals[1].ActivityCount)
	assert.Equal(t, 0, totals[1].ViolationCount)
}

func TestAggregateByUserEmpty(t *testing.T) {
	assert.Empty(t, AggregateByUser(nil))
}

func TestRenderTable(t *testing.T) {
	entries := sampleEntries()
	out := RenderTable("g1", "20260829", entries, AggregateByUser(entries))

	assert.Contains(t, out, "group g1")
	assert.Contains(t, out, "An")
	assert.Contains(t, out, "Binh")
	assert.Contains(t, out, "+2.0m over")
	assert.Contains(t, out, "Per-member totals:")
}

func TestRenderTableEmptyDay(t *testing.T) {
	out := RenderTable("g1", "20260829", nil, nil)
	assert.Contains(t, out, "No activity recorded.")
}
