package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"dulces-storefront/internal/domain"
)

type entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the entry model.
func (entry) TableName() string {
	return "entries"
}

// SQLite keeps entries in a single local database file.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the storage file at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate entries: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get returns the value stored under key, or domain.ErrNotFound.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	if err := s.db.WithContext(ctx).First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return e.Value, nil
}

// Put writes value under key, replacing any previous value.
func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	e := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
