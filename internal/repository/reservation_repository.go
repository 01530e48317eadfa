package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/reserfast/reserfast-api/internal/database"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrTableUnavailable is returned when another active reservation already holds the table on that date.
	ErrTableUnavailable = errors.New("reservation repository: table already reserved on that date")
	// ErrCreateReservation is returned when inserting the reservation header fails.
	ErrCreateReservation = errors.New("reservation repository: create reservation failed")
	// ErrLinkTable is returned when writing the table link fails.
	ErrLinkTable = errors.New("reservation repository: link table failed")
	// ErrLinkMenuItems is returned when writing menu item links fails.
	ErrLinkMenuItems = errors.New("reservation repository: link menu items failed")
	// ErrUpdateReservation is returned when saving the reservation header fails.
	ErrUpdateReservation = errors.New("reservation repository: update reservation failed")
)

// GormReservationRepository is a GORM implementation of ReservationRepository
type GormReservationRepository struct {
	activeStore[models.Reservation, *models.Reservation]
	db *gorm.DB
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &GormReservationRepository{
		activeStore: newActiveStore[models.Reservation](db, "reservations"),
		db:          db,
	}
}

// Create inserts the header and all links atomically
func (r *GormReservationRepository) Create(reservation *models.Reservation, tableID uint64, menuItemIDs []uint64, opts WriteOptions) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if opts.RejectConflicts {
			if err := ensureTableFree(tx, tableID, reservation.StartDate, nil); err != nil {
				return err
			}
		}

		reservation.Active = true
		if err := tx.Omit(clause.Associations).Create(reservation).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateReservation, err)
		}

		link := models.ReservationTable{
			ReservationID: reservation.ID,
			TableID:       tableID,
			Activatable:   models.Activatable{Active: true},
		}
		if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrLinkTable, err)
		}

		return linkMenuItems(tx, reservation.ID, menuItemIDs)
	})
}

// Update reconciles links with the requested table and items, then saves the header
func (r *GormReservationRepository) Update(reservation *models.Reservation, tableID uint64, menuItemIDs []uint64, opts WriteOptions) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if opts.RejectConflicts {
			if err := ensureTableFree(tx, tableID, reservation.StartDate, &reservation.ID); err != nil {
				return err
			}
		}

		if err := reconcileTableLink(tx, reservation.ID, tableID); err != nil {
			return err
		}

		if err := reconcileMenuLinks(tx, reservation.ID, menuItemIDs); err != nil {
			return err
		}

		if err := tx.Model(reservation).
			Omit(clause.Associations).
			Updates(map[string]interface{}{
				"start_date": reservation.StartDate,
				"total":      reservation.Total,
			}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateReservation, err)
		}

		return nil
	})
}

// FindByID finds a reservation with its customer and active links
func (r *GormReservationRepository) FindByID(id uint64) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := withActiveLinks(r.db).Preload("Customer").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindActiveOwned finds an active reservation owned by the customer
func (r *GormReservationRepository) FindActiveOwned(id, customerID uint64) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := withActiveLinks(r.db).
		Scopes(database.ActiveIn("reservations")).
		Where("customer_id = ?", customerID).
		First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByCustomer lists every reservation of a customer, newest date first
func (r *GormReservationRepository) ListByCustomer(customerID uint64) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := withActiveLinks(r.db).
		Where("customer_id = ?", customerID).
		Order("start_date DESC, id DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListActiveOn lists the active reservations of a date
func (r *GormReservationRepository) ListActiveOn(date time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := withActiveLinks(r.db).
		Preload("Customer").
		Scopes(database.ActiveIn("reservations")).
		Where("start_date = ?", utils.DateOf(date)).
		Order("id ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// List retrieves all reservations with pagination
func (r *GormReservationRepository) List(params utils.PaginationParams) ([]models.Reservation, int64, error) {
	var total int64
	if err := r.db.Model(&models.Reservation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []models.Reservation
	if err := withActiveLinks(r.db).
		Preload("Customer").
		Order("start_date DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

// IsTableAvailable reports whether the table is free on the date
func (r *GormReservationRepository) IsTableAvailable(tableID uint64, date time.Time, excludeReservationID *uint64) (bool, error) {
	return isTableAvailable(r.db, tableID, date, excludeReservationID)
}

func isTableAvailable(db *gorm.DB, tableID uint64, date time.Time, excludeReservationID *uint64) (bool, error) {
	query := db.Model(&models.ReservationTable{}).
		Joins("JOIN reservations ON reservations.id = reservation_tables.reservation_id").
		Scopes(database.ActiveIn("reservation_tables"), database.ActiveIn("reservations")).
		Where("reservation_tables.table_id = ?", tableID).
		Where("reservations.start_date = ?", utils.DateOf(date))

	if excludeReservationID != nil {
		query = query.Where("reservations.id <> ?", *excludeReservationID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// ensureTableFree locks the table row for the rest of the transaction and
// fails when the table is already held on the date.
func ensureTableFree(tx *gorm.DB, tableID uint64, date time.Time, excludeReservationID *uint64) error {
	var table models.DiningTable
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&table, tableID).Error; err != nil {
		return err
	}

	available, err := isTableAvailable(tx, tableID, date, excludeReservationID)
	if err != nil {
		return err
	}
	if !available {
		return ErrTableUnavailable
	}
	return nil
}

// reconcileTableLink swaps the active table link only when the table changed.
func reconcileTableLink(tx *gorm.DB, reservationID, tableID uint64) error {
	var current []models.ReservationTable
	if err := tx.Where("reservation_id = ? AND active = ?", reservationID, true).
		Find(&current).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrLinkTable, err)
	}

	keep := false
	var stale []uint64
	for _, link := range current {
		if link.TableID == tableID && !keep {
			keep = true
			continue
		}
		stale = append(stale, link.ID)
	}

	if len(stale) > 0 {
		if err := tx.Model(&models.ReservationTable{}).
			Where("id IN ?", stale).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrLinkTable, err)
		}
	}

	if keep {
		return nil
	}

	link := models.ReservationTable{
		ReservationID: reservationID,
		TableID:       tableID,
		Activatable:   models.Activatable{Active: true},
	}
	if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrLinkTable, err)
	}
	return nil
}

// reconcileMenuLinks deactivates links for removed items and links added
// ones. Links of items present in both sets are not touched.
func reconcileMenuLinks(tx *gorm.DB, reservationID uint64, menuItemIDs []uint64) error {
	var current []models.ReservationMenuItem
	if err := tx.Where("reservation_id = ? AND active = ?", reservationID, true).
		Find(&current).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrLinkMenuItems, err)
	}

	requested := make(map[uint64]struct{}, len(menuItemIDs))
	for _, id := range menuItemIDs {
		requested[id] = struct{}{}
	}

	linked := make(map[uint64]struct{}, len(current))
	var removed []uint64
	for _, link := range current {
		linked[link.MenuItemID] = struct{}{}
		if _, ok := requested[link.MenuItemID]; !ok {
			removed = append(removed, link.ID)
		}
	}

	var added []uint64
	for _, id := range menuItemIDs {
		if _, ok := linked[id]; !ok {
			added = append(added, id)
		}
	}

	if len(removed) > 0 {
		if err := tx.Model(&models.ReservationMenuItem{}).
			Where("id IN ?", removed).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrLinkMenuItems, err)
		}
	}

	return linkMenuItems(tx, reservationID, added)
}

// linkMenuItems inserts active links, reactivating a previously removed
// link for the same item instead of duplicating it.
func linkMenuItems(tx *gorm.DB, reservationID uint64, menuItemIDs []uint64) error {
	if len(menuItemIDs) == 0 {
		return nil
	}

	links := make([]models.ReservationMenuItem, len(menuItemIDs))
	for i, itemID := range menuItemIDs {
		links[i] = models.ReservationMenuItem{
			ReservationID: reservationID,
			MenuItemID:    itemID,
			Activatable:   models.Activatable{Active: true},
		}
	}

	if err := tx.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reservation_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"active": true}),
		}).
		Create(&links).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrLinkMenuItems, err)
	}
	return nil
}

// withActiveLinks preloads the active table and menu item links of a reservation.
func withActiveLinks(db *gorm.DB) *gorm.DB {
	return db.
		Preload("TableLinks", "active = ?", true).
		Preload("TableLinks.Table").
		Preload("MenuLinks", func(db *gorm.DB) *gorm.DB {
			return db.Where("active = ?", true).Order("id ASC")
		}).
		Preload("MenuLinks.MenuItem")
}
