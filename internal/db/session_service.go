package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nmthang/awaybot/internal/models"
)

// DayTotals summarizes one user's closed activities for a single day.
type DayTotals struct {
	TotalMinutes  float64
	ActivityCount int
}

// SessionService is the persistence gateway for session state. Every
// controller mutation is written through here before it is acknowledged.
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// SaveSession upserts the session row.
func (s *SessionService) SaveSession(sess *models.Session) error {
	if err := s.db.Save(sess).Error; err != nil {
		return fmt.Errorf("failed to persist session for %s: %w", sess.UserID, err)
	}
	return nil
}

// CloseSession writes the reset session row and its ledger entry in one
// transaction, so a crash mid-write never leaves a closed session without
// its record or a recorded session still marked active.
func (s *SessionService) CloseSession(sess *models.Session, entry *models.LedgerEntry) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Save(sess).Error
	})
	if err != nil {
		return fmt.Errorf("failed to persist close for %s: %w", sess.UserID, err)
	}
	return nil
}

// RestoreSessions loads every session row for process start.
func (s *SessionService) RestoreSessions() ([]models.Session, error) {
	var sessions []models.Session
	if err := s.db.Order("user_id ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to restore sessions: %w", err)
	}
	return sessions, nil
}

// DailyTotals returns the user's running totals for the given day.
func (s *SessionService) DailyTotals(userID, day string) (DayTotals, error) {
	var row struct {
		Total float64
		Count int64
	}
	err := s.db.Model(&models.LedgerEntry{}).
		Select("COALESCE(SUM(duration_minutes), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND day = ?", userID, day).
		Scan(&row).Error
	if err != nil {
		return DayTotals{}, fmt.Errorf("failed to total day %s for %s: %w", day, userID, err)
	}
	return DayTotals{TotalMinutes: row.Total, ActivityCount: int(row.Count)}, nil
}
