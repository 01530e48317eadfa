package repository

import (
	"time"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// Create creates a new customer
	Create(customer *models.Customer) error

	// FindByID finds a customer by ID regardless of its active flag
	FindByID(id uint64) (*models.Customer, error)

	// FindActive finds an active customer by ID
	FindActive(id uint64) (*models.Customer, error)

	// FindActiveByEmail finds an active customer by email
	FindActiveByEmail(email string) (*models.Customer, error)

	// EmailTaken reports whether another customer already uses the email
	EmailTaken(email string, excludeID uint64) (bool, error)

	// RUTTaken reports whether another customer already uses the RUT
	RUTTaken(rut string, excludeID uint64) (bool, error)

	// Update saves all customer fields
	Update(customer *models.Customer) error

	// SetActive sets the customer's active flag
	SetActive(id uint64, active bool) error

	// List retrieves customers with pagination
	List(params utils.PaginationParams) ([]models.Customer, int64, error)

	// CountActive counts active customers
	CountActive() (int64, error)

	// CountReservations counts a customer's reservations in any state
	CountReservations(customerID uint64) (int64, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	Create(employee *models.Employee) error
	FindByID(id uint64) (*models.Employee, error)
	FindActive(id uint64) (*models.Employee, error)
	FindActiveByUsername(username string) (*models.Employee, error)
	UsernameTaken(username string, excludeID uint64) (bool, error)
	Update(employee *models.Employee) error
	SetActive(id uint64, active bool) error
	Toggle(id uint64) (bool, error)

	// List retrieves employees, optionally restricted to one role
	List(role *models.RoleCode) ([]models.Employee, error)

	// CountActiveByRole counts active employees holding the role
	CountActiveByRole(role models.RoleCode) (int64, error)

	// SetOnDuty records whether the employee is on shift
	SetOnDuty(employeeID uint64, onDuty bool) error

	// IsOnDuty reports the employee's shift status; false when never set
	IsOnDuty(employeeID uint64) (bool, error)

	// CountOnDuty counts active employees of the role currently on shift
	CountOnDuty(role models.RoleCode) (int64, error)
}

// TableRepository defines the interface for dining table data access
type TableRepository interface {
	Create(table *models.DiningTable) error
	FindByID(id uint64) (*models.DiningTable, error)
	FindActive(id uint64) (*models.DiningTable, error)
	Update(table *models.DiningTable) error
	SetActive(id uint64, active bool) error
	Toggle(id uint64) (bool, error)
	ListActive(order string) ([]models.DiningTable, error)
	ListAll() ([]models.DiningTable, error)
	CountActive() (int64, error)
}

// MenuRepository defines the interface for menu item data access
type MenuRepository interface {
	Create(item *models.MenuItem) error
	FindByID(id uint64) (*models.MenuItem, error)
	FindActive(id uint64) (*models.MenuItem, error)

	// TitleTaken reports whether another item already uses the title
	TitleTaken(title string, excludeID uint64) (bool, error)

	// FindActiveByIDs returns the active items among ids
	FindActiveByIDs(ids []uint64) ([]models.MenuItem, error)

	Update(item *models.MenuItem) error
	SetActive(id uint64, active bool) error
	Toggle(id uint64) (bool, error)
	ListActive(order string) ([]models.MenuItem, error)
	ListAll() ([]models.MenuItem, error)
	CountActive() (int64, error)
}

// ReservationRepository defines the interface for reservation data access
type ReservationRepository interface {
	// Create inserts the header, its table link and one link per menu item
	// within a single transaction
	Create(reservation *models.Reservation, tableID uint64, menuItemIDs []uint64, opts WriteOptions) error

	// Update reconciles the table link and menu item links against the
	// requested values and saves the header within a single transaction
	Update(reservation *models.Reservation, tableID uint64, menuItemIDs []uint64, opts WriteOptions) error

	// FindByID finds a reservation with its active links preloaded
	FindByID(id uint64) (*models.Reservation, error)

	// FindActiveOwned finds an active reservation belonging to the customer
	FindActiveOwned(id, customerID uint64) (*models.Reservation, error)

	// SetActive sets the header's active flag; links are left untouched
	SetActive(id uint64, active bool) error

	// ListByCustomer lists every reservation of a customer with active links preloaded
	ListByCustomer(customerID uint64) ([]models.Reservation, error)

	// ListActiveOn lists active reservations on a date with links and customer preloaded
	ListActiveOn(date time.Time) ([]models.Reservation, error)

	// List retrieves all reservations with pagination
	List(params utils.PaginationParams) ([]models.Reservation, int64, error)

	// IsTableAvailable reports whether no other active reservation holds an
	// active link to the table on the date
	IsTableAvailable(tableID uint64, date time.Time, excludeReservationID *uint64) (bool, error)

	CountActive() (int64, error)
}

// WriteOptions controls conflict handling for reservation writes
type WriteOptions struct {
	// RejectConflicts locks the table row and re-checks availability inside
	// the write transaction, failing with ErrTableUnavailable on conflict
	RejectConflicts bool
}
