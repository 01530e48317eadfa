package repository

import (
	"github.com/reserfast/reserfast-api/internal/database"
	"github.com/reserfast/reserfast-api/internal/models"
	"gorm.io/gorm"
)

// activeStore provides the soft-delete aware lookups shared by every
// repository. Reads through it always filter on the active flag.
type activeStore[T any, PT interface {
	*T
	models.Deactivatable
}] struct {
	db    *gorm.DB
	table string
}

func newActiveStore[T any, PT interface {
	*T
	models.Deactivatable
}](db *gorm.DB, table string) activeStore[T, PT] {
	return activeStore[T, PT]{db: db, table: table}
}

// FindActive finds an active record by ID
func (s activeStore[T, PT]) FindActive(id uint64) (*T, error) {
	var record T
	if err := s.db.Scopes(database.ActiveIn(s.table)).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListActive lists active records in the given order
func (s activeStore[T, PT]) ListActive(order string) ([]T, error) {
	var records []T
	if err := s.db.Scopes(database.ActiveIn(s.table)).Order(order).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountActive counts active records
func (s activeStore[T, PT]) CountActive() (int64, error) {
	var count int64
	if err := s.db.Model(new(T)).Scopes(database.ActiveIn(s.table)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SetActive sets the active flag of an existing record
func (s activeStore[T, PT]) SetActive(id uint64, active bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var record T
		if err := tx.First(&record, id).Error; err != nil {
			return err
		}
		return tx.Model(&record).Update("active", active).Error
	})
}

// Toggle flips the active flag and returns the new value
func (s activeStore[T, PT]) Toggle(id uint64) (bool, error) {
	var next bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record T
		if err := tx.First(&record, id).Error; err != nil {
			return err
		}
		next = !PT(&record).IsActive()
		return tx.Model(&record).Update("active", next).Error
	})
	return next, err
}
