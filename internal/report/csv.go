package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nmthang/awaybot/internal/models"
)

// WriteCSV writes the day's detail rows and per-user summary to path.
// The file is written to a temporary sibling and renamed into place, so a
// crash mid-write never leaves a truncated report behind.
func WriteCSV(path string, entries []models.LedgerEntry, totals []UserTotals) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := writeRows(w, entries, totals); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close report: %w", err)
	}

	return os.Rename(tmp, path)
}

func writeRows(w *csv.Writer, entries []models.LedgerEntry, totals []UserTotals) error {
	header := []string{"user_id", "name", "activity", "started_at", "ended_at", "minutes", "limit", "violation", "overage_minutes", "forced"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.UserID,
			e.DisplayName,
			e.Kind,
			e.StartedAt.Format(time.RFC3339),
			e.EndedAt.Format(time.RFC3339),
			strconv.FormatFloat(e.DurationMinutes, 'f', 2, 64),
			strconv.Itoa(e.LimitMinutes),
			strconv.FormatBool(e.Violation),
			strconv.FormatFloat(e.OverageMinutes, 'f', 2, 64),
			strconv.FormatBool(e.Forced),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	// summary block, one row per user
	if err := w.Write([]string{}); err != nil {
		return err
	}
	if err := w.Write([]string{"user_id", "name", "total_minutes", "activity_count", "violation_count"}); err != nil {
		return err
	}
	for _, t := range totals {
		row := []string{
			t.UserID,
			t.DisplayName,
			strconv.FormatFloat(t.TotalMinutes, 'f', 2, 64),
			strconv.Itoa(t.ActivityCount),
			strconv.Itoa(t.ViolationCount),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
