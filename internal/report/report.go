package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nmthang/awaybot/internal/models"
)

// UserTotals is one user's aggregate for a group/day.
type UserTotals struct {
	UserID         string
	DisplayName    string
	TotalMinutes   float64
	ActivityCount  int
	ViolationCount int
}

// AggregateByUser reduces a day's ledger entries to per-user totals,
// sorted by total time descending.
func AggregateByUser(entries []models.LedgerEntry) []UserTotals {
	byUser := make(map[string]*UserTotals)
	order := make([]string, 0)
	for _, e := range entries {
		t, ok := byUser[e.UserID]
		if !ok {
			t = &UserTotals{UserID: e.UserID}
			byUser[e.UserID] = t
			order = append(order, e.UserID)
		}
		t.DisplayName = e.DisplayName
		t.TotalMinutes += e.DurationMinutes
		t.ActivityCount++
		if e.Violation {
			t.ViolationCount++
		}
	}

	out := make([]UserTotals, 0, len(order))
	for _, id := range order {
		out = append(out, *byUser[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalMinutes > out[j].TotalMinutes })
	return out
}

// RenderTable formats a day's entries and totals for the terminal.
func RenderTable(groupID, day string, entries []models.LedgerEntry, totals []UserTotals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Activity report for group %s, %s\n\n", groupID, day)

	if len(entries) == 0 {
		b.WriteString("No activity recorded.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-16s %-20s %-8s %-8s %-10s %s\n", "MEMBER", "ACTIVITY", "START", "END", "MINUTES", "VIOLATION")
	b.WriteString(strings.Repeat("-", 78))
	b.WriteString("\n")
	for _, e := range entries {
		violation := ""
		if e.Violation {
			violation = fmt.Sprintf("+%.1fm over", e.OverageMinutes)
		}
		fmt.Fprintf(&b, "%-16s %-20s %-8s %-8s %-10.1f %s\n",
			truncate(e.DisplayName, 16),
			truncate(e.Kind, 20),
			e.StartedAt.Format("15:04:05"),
			e.EndedAt.Format("15:04:05"),
			e.DurationMinutes,
			violation)
	}

	b.WriteString("\nPer-member totals:\n")
	fmt.Fprintf(&b, "%-16s %-10s %-8s %s\n", "MEMBER", "MINUTES", "TIMES", "VIOLATIONS")
	b.WriteString(strings.Repeat("-", 48))
	b.WriteString("\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "%-16s %-10.1f %-8d %d\n",
			truncate(t.DisplayName, 16), t.TotalMinutes, t.ActivityCount, t.ViolationCount)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
