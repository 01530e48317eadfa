package repository

import (
	"github.com/reserfast/reserfast-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTableRepository is a GORM implementation of TableRepository
type GormTableRepository struct {
	activeStore[models.DiningTable, *models.DiningTable]
	db *gorm.DB
}

// NewTableRepository creates a new TableRepository
func NewTableRepository(db *gorm.DB) TableRepository {
	return &GormTableRepository{
		activeStore: newActiveStore[models.DiningTable](db, "dining_tables"),
		db:          db,
	}
}

func (r *GormTableRepository) Create(table *models.DiningTable) error {
	return r.db.Create(table).Error
}

func (r *GormTableRepository) FindByID(id uint64) (*models.DiningTable, error) {
	var table models.DiningTable
	if err := r.db.First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *GormTableRepository) Update(table *models.DiningTable) error {
	return r.db.Save(table).Error
}

func (r *GormTableRepository) ListAll() ([]models.DiningTable, error) {
	var tables []models.DiningTable
	if err := r.db.Order("name ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// GormMenuRepository is a GORM implementation of MenuRepository
type GormMenuRepository struct {
	activeStore[models.MenuItem, *models.MenuItem]
	db *gorm.DB
}

// NewMenuRepository creates a new MenuRepository
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &GormMenuRepository{
		activeStore: newActiveStore[models.MenuItem](db, "menu_items"),
		db:          db,
	}
}

func (r *GormMenuRepository) Create(item *models.MenuItem) error {
	return r.db.Omit(clause.Associations).Create(item).Error
}

func (r *GormMenuRepository) FindByID(id uint64) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormMenuRepository) TitleTaken(title string, excludeID uint64) (bool, error) {
	return exists(r.db.Model(&models.MenuItem{}).Where("title = ?", title), excludeID)
}

func (r *GormMenuRepository) FindActiveByIDs(ids []uint64) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}

	var items []models.MenuItem
	if err := r.db.Where("id IN ? AND active = ?", ids, true).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormMenuRepository) Update(item *models.MenuItem) error {
	return r.db.Omit(clause.Associations).Save(item).Error
}

func (r *GormMenuRepository) ListAll() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.Order("category ASC, title ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
