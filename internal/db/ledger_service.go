package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nmthang/awaybot/internal/models"
)

// LedgerService reads the append-only activity ledger.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Query returns all entries for a group and day in append order, which is
// chronological by close time.
func (s *LedgerService) Query(groupID, day string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := s.db.Where("group_id = ? AND day = ?", groupID, day).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for group %s day %s: %w", groupID, day, err)
	}
	return entries, nil
}

// QueryUser returns one user's entries for a day in append order.
func (s *LedgerService) QueryUser(userID, day string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := s.db.Where("user_id = ? AND day = ?", userID, day).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for user %s day %s: %w", userID, day, err)
	}
	return entries, nil
}
