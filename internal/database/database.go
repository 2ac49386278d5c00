package database

import (
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"compscope/server/internal/models"
)

// Database is the comparable-record store backing the report engine.
type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewDatabase opens (or creates) the sqlite store at dbPath and runs
// schema migration.
func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&models.PropertyRecord{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

// DB exposes the underlying gorm handle for transactional callers.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// UpsertRecords inserts or replaces a batch of records inside the given
// transaction handle. Feed syncs re-deliver the same listing many
// times; the MLS identifier is the conflict key.
func UpsertRecords(tx *gorm.DB, records []*models.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(records).Error
	if err != nil {
		return fmt.Errorf("failed to upsert records: %w", err)
	}
	return nil
}

// GetComparables returns every record attached to a subject, subject
// record included, ordered by identifier for deterministic output.
func (d *Database) GetComparables(subjectID string) ([]*models.PropertyRecord, error) {
	var records []*models.PropertyRecord
	err := d.db.
		Where("subject_id = ? OR id = ?", subjectID, subjectID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query comparables: %w", err)
	}
	return records, nil
}

// GetRecord fetches one record by identifier; nil when absent.
func (d *Database) GetRecord(id string) (*models.PropertyRecord, error) {
	var rec models.PropertyRecord
	err := d.db.First(&rec, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query record %s: %w", id, err)
	}
	return &rec, nil
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
