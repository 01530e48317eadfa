package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reserfast/reserfast-api/internal/constants"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/utils"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrInvalidRole      = errors.New("role must be one of admin, waiter, cook")
	ErrDutyNotAllowed   = errors.New("only waiters and cooks track duty status")
	ErrSelfLockout      = errors.New("you cannot deactivate or demote your own account")
	ErrLastAdmin        = errors.New("at least one active administrator must remain")
)

// EmployeeService handles staff accounts.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
	}
}

// CreateEmployeeInput represents an admin creating a staff account.
type CreateEmployeeInput struct {
	FirstName       string
	LastName        string
	SecondLastName  string
	Username        string
	Role            models.RoleCode
	GenderID        *uint64
	Password        string
	PasswordConfirm string
}

// UpdateEmployeeInput represents an admin edit. A non-empty Password resets it.
type UpdateEmployeeInput struct {
	FirstName       string
	LastName        string
	SecondLastName  string
	Username        string
	Role            models.RoleCode
	GenderID        *uint64
	Password        string
	PasswordConfirm string
}

// UpdateSelfInput represents an employee editing their own profile.
type UpdateSelfInput struct {
	FirstName          string
	LastName           string
	SecondLastName     string
	GenderID           *uint64
	CurrentPassword    string
	NewPassword        string
	NewPasswordConfirm string
}

// Create adds an active employee.
func (s *EmployeeService) Create(input CreateEmployeeInput) (*models.Employee, error) {
	username, err := s.validateAccount(input.FirstName, input.LastName, input.Username, input.Role, 0)
	if err != nil {
		return nil, err
	}
	if err := checkNewPassword(input.Password, input.PasswordConfirm, constants.MinPasswordLength); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	employee := &models.Employee{
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		SecondLastName: strings.TrimSpace(input.SecondLastName),
		Username:       username,
		PasswordHash:   hash,
		RoleCode:       input.Role,
		GenderID:       input.GenderID,
		Activatable:    models.Activatable{Active: true},
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		if isDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

// Update edits an employee as the administrator actorID.
func (s *EmployeeService) Update(id, actorID uint64, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	username, err := s.validateAccount(input.FirstName, input.LastName, input.Username, input.Role, employee.ID)
	if err != nil {
		return nil, err
	}
	if input.Role != models.RoleAdmin {
		if err := s.guardAdminRemoval(employee, actorID); err != nil {
			return nil, err
		}
	}

	if input.Password != "" {
		if err := checkNewPassword(input.Password, input.PasswordConfirm, constants.MinPasswordLength); err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		employee.PasswordHash = hash
	}

	employee.FirstName = strings.TrimSpace(input.FirstName)
	employee.LastName = strings.TrimSpace(input.LastName)
	employee.SecondLastName = strings.TrimSpace(input.SecondLastName)
	employee.Username = username
	employee.RoleCode = input.Role
	employee.GenderID = input.GenderID

	if err := s.employeeRepo.Update(employee); err != nil {
		if isDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// UpdateSelf edits the caller's own profile. Changing the password requires
// the current one.
func (s *EmployeeService) UpdateSelf(id uint64, input UpdateSelfInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindActive(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	fields := fieldErrors{}
	fields.require("first_name", input.FirstName)
	fields.require("last_name", input.LastName)
	if err := fields.err(); err != nil {
		return nil, err
	}

	if input.NewPassword != "" {
		if !utils.CheckPassword(input.CurrentPassword, employee.PasswordHash) {
			return nil, ErrCurrentPasswordWrong
		}
		if err := checkNewPassword(input.NewPassword, input.NewPasswordConfirm, constants.MinPasswordLength); err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		employee.PasswordHash = hash
	}

	employee.FirstName = strings.TrimSpace(input.FirstName)
	employee.LastName = strings.TrimSpace(input.LastName)
	employee.SecondLastName = strings.TrimSpace(input.SecondLastName)
	employee.GenderID = input.GenderID

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// Get returns an employee in any state.
func (s *EmployeeService) Get(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// List returns employees, optionally of a single role.
func (s *EmployeeService) List(role *models.RoleCode) ([]models.Employee, error) {
	if role != nil && !role.Valid() {
		return nil, ErrInvalidRole
	}
	employees, err := s.employeeRepo.List(role)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Toggle flips the employee's active flag and returns the new value.
func (s *EmployeeService) Toggle(id, actorID uint64) (bool, error) {
	employee, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if employee.Active {
		if err := s.guardAdminRemoval(employee, actorID); err != nil {
			return false, err
		}
	}

	active, err := s.employeeRepo.Toggle(id)
	if err != nil {
		if isNotFound(err) {
			return false, ErrEmployeeNotFound
		}
		return false, fmt.Errorf("failed to toggle employee: %w", err)
	}
	return active, nil
}

// Deactivate soft-deletes an employee.
func (s *EmployeeService) Deactivate(id, actorID uint64) error {
	employee, err := s.Get(id)
	if err != nil {
		return err
	}
	if employee.Active {
		if err := s.guardAdminRemoval(employee, actorID); err != nil {
			return err
		}
	}

	if err := s.employeeRepo.SetActive(id, false); err != nil {
		if isNotFound(err) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	return nil
}

// SetPassword replaces an employee's password as an administrator.
func (s *EmployeeService) SetPassword(id uint64, password, confirm string) error {
	employee, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := checkNewPassword(password, confirm, constants.MinPasswordLength); err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return ErrFailedToHashPassword
	}
	employee.PasswordHash = hash

	if err := s.employeeRepo.Update(employee); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

// SetOnDuty records the shift status of a waiter or cook.
func (s *EmployeeService) SetOnDuty(id uint64, role models.RoleCode, onDuty bool) error {
	if role != models.RoleWaiter && role != models.RoleCook {
		return ErrDutyNotAllowed
	}
	if err := s.employeeRepo.SetOnDuty(id, onDuty); err != nil {
		return fmt.Errorf("failed to update duty status: %w", err)
	}
	return nil
}

// IsOnDuty reports the employee's shift status.
func (s *EmployeeService) IsOnDuty(id uint64) (bool, error) {
	onDuty, err := s.employeeRepo.IsOnDuty(id)
	if err != nil {
		return false, fmt.Errorf("failed to read duty status: %w", err)
	}
	return onDuty, nil
}

// guardAdminRemoval refuses to take an employee out of the active
// administrators when it is the caller itself or the last one left.
func (s *EmployeeService) guardAdminRemoval(employee *models.Employee, actorID uint64) error {
	if employee.ID == actorID {
		return ErrSelfLockout
	}
	if !employee.Active || employee.RoleCode != models.RoleAdmin {
		return nil
	}
	admins, err := s.employeeRepo.CountActiveByRole(models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count administrators: %w", err)
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func (s *EmployeeService) validateAccount(firstName, lastName, username string, role models.RoleCode, excludeID uint64) (string, error) {
	fields := fieldErrors{}
	fields.require("first_name", firstName)
	fields.require("last_name", lastName)
	fields.require("username", username)
	if err := fields.err(); err != nil {
		return "", err
	}
	if !role.Valid() {
		return "", ErrInvalidRole
	}

	username = strings.TrimSpace(username)
	taken, err := s.employeeRepo.UsernameTaken(username, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return "", ErrUsernameTaken
	}
	return username, nil
}
