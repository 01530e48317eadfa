package repository

import (
	"github.com/reserfast/reserfast-api/internal/database"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/utils"
	"gorm.io/gorm"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	activeStore[models.Customer, *models.Customer]
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{
		activeStore: newActiveStore[models.Customer](db, "customers"),
		db:          db,
	}
}

// Create creates a new customer
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(id uint64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("Gender").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindActiveByEmail finds an active customer by email
func (r *GormCustomerRepository) FindActiveByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Scopes(database.ActiveIn("customers")).
		Where("email = ?", email).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// EmailTaken reports whether another customer already uses the email
func (r *GormCustomerRepository) EmailTaken(email string, excludeID uint64) (bool, error) {
	return exists(r.db.Model(&models.Customer{}).Where("email = ?", email), excludeID)
}

// RUTTaken reports whether another customer already uses the RUT
func (r *GormCustomerRepository) RUTTaken(rut string, excludeID uint64) (bool, error) {
	return exists(r.db.Model(&models.Customer{}).Where("rut = ?", rut), excludeID)
}

// Update saves all customer fields
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Omit("Gender", "Reservations").Save(customer).Error
}

// List retrieves customers with pagination
func (r *GormCustomerRepository) List(params utils.PaginationParams) ([]models.Customer, int64, error) {
	var total int64
	if err := r.db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	if err := r.db.Order("last_name ASC, first_name ASC").
		Scopes(database.Paginate(params)).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// CountReservations counts a customer's reservations in any state
func (r *GormCustomerRepository) CountReservations(customerID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reservation{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// exists reports whether query matches any row other than excludeID.
func exists(query *gorm.DB, excludeID uint64) (bool, error) {
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
