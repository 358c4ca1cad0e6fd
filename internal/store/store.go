package store

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "prices.db"

const createPrices = `CREATE TABLE IF NOT EXISTS prices
	(timestamp TEXT, btc_price REAL, eth_price REAL)`

// Store persists price snapshots in an embedded SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and makes sure
// the prices table exists. Calling it again on the same file is safe.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return s, nil
}

// Migrate creates the prices table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec(createPrices).Error
}

// Append inserts one snapshot in its own transaction.
func (s *Store) Append(ctx context.Context, snap Snapshot) error {
	return s.db.WithContext(ctx).Create(&snap).Error
}

// ListAll returns every snapshot, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Snapshot, error) {
	var snaps []Snapshot
	result := s.db.WithContext(ctx).Order("timestamp desc").Find(&snaps)
	return snaps, result.Error
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
