package services

import (
	"testing"
	"time"

	"github.com/reserfast/reserfast-api/internal/database"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/reserfast/reserfast-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixedNow is the clock used by service tests: 10 March 2026, 15:00 UTC.
var fixedNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

type serviceTestEnv struct {
	db           *gorm.DB
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	tableRepo    repository.TableRepository
	menuRepo     repository.MenuRepository
	resRepo      repository.ReservationRepository
	images       *storage.LocalStorage
	admin        *models.Employee

	auth         *AuthService
	customers    *CustomerService
	employees    *EmployeeService
	catalog      *CatalogService
	reservations *ReservationService
	dashboard    *DashboardService
}

func setupServiceTestEnv(t *testing.T, opts ReservationOptions) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, database.Seed(db, nil))

	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}

	env := serviceTestEnv{
		db:           db,
		customerRepo: repository.NewCustomerRepository(db),
		employeeRepo: repository.NewEmployeeRepository(db),
		tableRepo:    repository.NewTableRepository(db),
		menuRepo:     repository.NewMenuRepository(db),
		resRepo:      repository.NewReservationRepository(db),
		images:       storage.NewLocalStorage(t.TempDir(), "/media", 1024*1024),
	}
	env.auth = NewAuthService(env.customerRepo, env.employeeRepo)
	env.customers = NewCustomerService(env.customerRepo, env.images)
	env.customers.now = opts.Now
	env.employees = NewEmployeeService(env.employeeRepo)
	env.catalog = NewCatalogService(env.tableRepo, env.menuRepo, env.images)
	env.reservations = NewReservationService(env.resRepo, env.tableRepo, env.menuRepo, opts)
	env.dashboard = NewDashboardService(env.customerRepo, env.employeeRepo, env.tableRepo, env.menuRepo, env.resRepo)
	env.admin = env.createEmployee(t, "admin", models.RoleAdmin)
	return env
}

func (env serviceTestEnv) createCustomer(t *testing.T, email, rut string) *models.Customer {
	t.Helper()

	customer, err := env.customers.Register(RegisterCustomerInput{
		FirstName:       "Ana",
		LastName:        "Rojas",
		RUT:             rut,
		Email:           email,
		Password:        "secreto",
		PasswordConfirm: "secreto",
	})
	require.NoError(t, err)
	return customer
}

func (env serviceTestEnv) createEmployee(t *testing.T, username string, role models.RoleCode) *models.Employee {
	t.Helper()

	employee, err := env.employees.Create(CreateEmployeeInput{
		FirstName:       "Pedro",
		LastName:        "Soto",
		Username:        username,
		Role:            role,
		Password:        "secreto",
		PasswordConfirm: "secreto",
	})
	require.NoError(t, err)
	return employee
}

func (env serviceTestEnv) createTable(t *testing.T, name string) *models.DiningTable {
	t.Helper()

	table, err := env.catalog.CreateTable(TableInput{Name: name}, env.admin.ID)
	require.NoError(t, err)
	return table
}

func (env serviceTestEnv) createMenuItem(t *testing.T, title string, price int64) *models.MenuItem {
	t.Helper()

	item, err := env.catalog.CreateMenuItem(MenuItemInput{
		Title:       title,
		Description: title + " de la casa",
		Category:    "Fondos",
		Price:       price,
	}, env.admin.ID)
	require.NoError(t, err)
	return item
}

func today() time.Time {
	return utils.DateOf(fixedNow)
}
