package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nmthang/awaybot/internal/models"
)

// CorruptStateError marks durable state that could not be opened or
// migrated at startup. The caller starts empty but must not hide this.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt state at %s: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// Open connects to the sqlite database at path and runs migrations.
// A missing file is a cold start, not an error.
func Open(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create awaybot directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, &CorruptStateError{Path: path, Err: err}
	}

	if err := runMigrations(db); err != nil {
		return nil, &CorruptStateError{Path: path, Err: err}
	}

	return db, nil
}

// OpenWithRecovery opens the database; if the existing file is unreadable it
// moves the file aside and starts over with empty state, logging loudly.
func OpenWithRecovery(path string) (*gorm.DB, error) {
	db, err := Open(path)
	if err == nil {
		return db, nil
	}

	var corrupt *CorruptStateError
	if !errors.As(err, &corrupt) {
		return nil, err
	}

	quarantine := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405"))
	log.Printf("ERROR: state database unreadable, moving %s aside to %s and starting empty: %v", path, quarantine, corrupt.Err)
	if renameErr := os.Rename(path, quarantine); renameErr != nil {
		return nil, fmt.Errorf("failed to quarantine corrupt state: %v (original: %w)", renameErr, err)
	}
	return Open(path)
}

// OpenMemory opens an in-memory database for tests.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// runMigrations creates/updates the database schema
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Group{},
		&models.GroupMember{},
		&models.Session{},
		&models.LedgerEntry{},
	)
}

// Close closes the underlying connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
