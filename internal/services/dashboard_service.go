package services

import (
	"fmt"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
)

// DashboardService aggregates counts for the admin dashboard.
type DashboardService struct {
	customerRepo    repository.CustomerRepository
	employeeRepo    repository.EmployeeRepository
	tableRepo       repository.TableRepository
	menuRepo        repository.MenuRepository
	reservationRepo repository.ReservationRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	tableRepo repository.TableRepository,
	menuRepo repository.MenuRepository,
	reservationRepo repository.ReservationRepository,
) *DashboardService {
	return &DashboardService{
		customerRepo:    customerRepo,
		employeeRepo:    employeeRepo,
		tableRepo:       tableRepo,
		menuRepo:        menuRepo,
		reservationRepo: reservationRepo,
	}
}

// DashboardStats holds active entity counts.
type DashboardStats struct {
	Customers     int64 `json:"customers"`
	Admins        int64 `json:"admins"`
	Waiters       int64 `json:"waiters"`
	Cooks         int64 `json:"cooks"`
	WaitersOnDuty int64 `json:"waiters_on_duty"`
	CooksOnDuty   int64 `json:"cooks_on_duty"`
	Tables        int64 `json:"tables"`
	MenuItems     int64 `json:"menu_items"`
	Reservations  int64 `json:"reservations"`
}

// Stats counts active records of every kind.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	var stats DashboardStats
	counters := []struct {
		name  string
		dst   *int64
		count func() (int64, error)
	}{
		{"customers", &stats.Customers, s.customerRepo.CountActive},
		{"admins", &stats.Admins, func() (int64, error) { return s.employeeRepo.CountActiveByRole(models.RoleAdmin) }},
		{"waiters", &stats.Waiters, func() (int64, error) { return s.employeeRepo.CountActiveByRole(models.RoleWaiter) }},
		{"cooks", &stats.Cooks, func() (int64, error) { return s.employeeRepo.CountActiveByRole(models.RoleCook) }},
		{"waiters on duty", &stats.WaitersOnDuty, func() (int64, error) { return s.employeeRepo.CountOnDuty(models.RoleWaiter) }},
		{"cooks on duty", &stats.CooksOnDuty, func() (int64, error) { return s.employeeRepo.CountOnDuty(models.RoleCook) }},
		{"tables", &stats.Tables, s.tableRepo.CountActive},
		{"menu items", &stats.MenuItems, s.menuRepo.CountActive},
		{"reservations", &stats.Reservations, s.reservationRepo.CountActive},
	}

	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
		*c.dst = n
	}
	return &stats, nil
}
