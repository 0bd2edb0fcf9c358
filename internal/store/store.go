// Package store is the single consistency boundary for all persistent state.
// Every component reads and writes barcodes and settings exclusively through
// a Store; raw database handles are never shared.
//
// Writes are serialized through one process-wide mutex held for the duration
// of a transaction. Reads bypass the mutex and see a consistent snapshot as
// of query execution.
package store

import (
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// ErrEmptyBarcode is returned when inserting an empty payload.
	ErrEmptyBarcode = errors.New("barcode cannot be empty")
)

// Store owns the database handle and the exclusive write lock.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %q", path)
	}

	return &Store{db: db}, nil
}

// write runs fn inside a transaction while holding the write lock. A failing
// fn rolls the transaction back and the error is returned with the lock
// released.
func (s *Store) write(fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(fn)
}

// Init idempotently creates the schemas, seeds default settings without
// overwriting existing rows, and mints the machine UUID on first run.
func (s *Store) Init() error {
	if err := s.db.AutoMigrate(&Barcode{}, &Setting{}); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	seed := Defaults()
	seed[KeyMachineUUID] = uuid.NewString()

	return s.write(func(tx *gorm.DB) error {
		rows := make([]Setting, 0, len(seed))
		for key, value := range seed {
			rows = append(rows, Setting{Key: key, Value: value, UpdatedAt: now()})
		}

		// Existing rows win: defaults never clobber operator state.
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

// Insert appends a new record with status Scanned.
func (s *Store) Insert(barcode string) error {
	if barcode == "" {
		return ErrEmptyBarcode
	}

	return s.write(func(tx *gorm.DB) error {
		return tx.Create(&Barcode{
			Barcode:   barcode,
			CreatedAt: now(),
			Status:    StatusScanned,
		}).Error
	})
}

// Read returns up to limit records, most recent first. With pendingOnly set,
// only records without a terminal outcome are returned.
func (s *Store) Read(limit int, pendingOnly bool) ([]Barcode, error) {
	q := s.db.Model(&Barcode{}).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if pendingOnly {
		q = q.Where("completed_at IS NULL")
	}

	var records []Barcode
	if err := q.Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to read barcodes")
	}

	return records, nil
}

// CountPending counts pending records created at least olderThan ago. The
// grace window keeps records still in flight from tripping the error light.
func (s *Store) CountPending(olderThan time.Duration) (int64, error) {
	var count int64

	err := s.db.Model(&Barcode{}).
		Where("completed_at IS NULL AND created_at <= ?", now().Add(-olderThan)).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count pending barcodes")
	}

	return count, nil
}

// SetStatusBatch atomically records terminal outcomes: for every id listed
// under a status, CompletedAt is set to now and the status written. A record
// transitions at most once: ids that already carry a terminal outcome are
// skipped. Empty input is a no-op without a transaction.
func (s *Store) SetStatusBatch(statusToIDs map[string][]uint64) error {
	total := 0
	for _, ids := range statusToIDs {
		total += len(ids)
	}

	if total == 0 {
		return nil
	}

	completed := now()

	return s.write(func(tx *gorm.DB) error {
		for status, ids := range statusToIDs {
			if len(ids) == 0 {
				continue
			}

			err := tx.Model(&Barcode{}).
				Where("id IN ?", ids).
				Where("completed_at IS NULL").
				Updates(map[string]interface{}{
					"completed_at": completed,
					"status":       status,
				}).Error
			if err != nil {
				return errors.Wrapf(err, "failed to set status %q", status)
			}
		}

		return nil
	})
}

// SetSettings upserts every key/value pair in one transaction, refreshing
// UpdatedAt. Empty input is a no-op.
func (s *Store) SetSettings(settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}

	rows := make([]Setting, 0, len(settings))
	for key, value := range settings {
		rows = append(rows, Setting{Key: key, Value: value, UpdatedAt: now()})
	}

	return s.write(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

// Settings returns all stored settings merged over the built-in defaults.
func (s *Store) Settings() (map[string]string, error) {
	var rows []Setting
	if err := s.db.Order("key").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to read settings")
	}

	settings := Defaults()
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	return settings, nil
}

// PurgeOlderThan deletes records created before now minus age and returns the
// number of rows removed.
func (s *Store) PurgeOlderThan(age time.Duration) (int64, error) {
	var deleted int64

	err := s.write(func(tx *gorm.DB) error {
		result := tx.Where("created_at < ?", now().Add(-age)).Delete(&Barcode{})
		deleted = result.RowsAffected

		return result.Error
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge old barcodes")
	}

	return deleted, nil
}

func now() time.Time {
	return time.Now().UTC()
}
