package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/utils"
)

var (
	ErrPrincipalInactive = errors.New("account no longer active")
)

// AuthService verifies credentials for both kinds of principal.
type AuthService struct {
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(customerRepo repository.CustomerRepository, employeeRepo repository.EmployeeRepository) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
	}
}

// LoginCustomer authenticates a customer by email and password. Unknown
// emails, inactive accounts and wrong passwords all yield ErrInvalidCredentials.
func (s *AuthService) LoginCustomer(email, password string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindActiveByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	if !utils.CheckPassword(password, customer.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return customer, nil
}

// LoginEmployee authenticates an employee by username and password.
func (s *AuthService) LoginEmployee(username, password string) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindActiveByUsername(strings.TrimSpace(username))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if !utils.CheckPassword(password, employee.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return employee, nil
}

// ActiveCustomer returns the customer if it still exists and is active.
func (s *AuthService) ActiveCustomer(id uint64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindActive(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPrincipalInactive
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// ActiveEmployee returns the employee if it still exists and is active.
func (s *AuthService) ActiveEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindActive(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPrincipalInactive
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}
