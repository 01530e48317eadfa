package repository

import (
	"github.com/reserfast/reserfast-api/internal/database"
	"github.com/reserfast/reserfast-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	activeStore[models.Employee, *models.Employee]
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{
		activeStore: newActiveStore[models.Employee](db, "employees"),
		db:          db,
	}
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Omit(clause.Associations).Create(employee).Error
}

func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) FindActiveByUsername(username string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Scopes(database.ActiveIn("employees")).
		Where("username = ?", username).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) UsernameTaken(username string, excludeID uint64) (bool, error) {
	return exists(r.db.Model(&models.Employee{}).Where("username = ?", username), excludeID)
}

func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Omit(clause.Associations).Save(employee).Error
}

func (r *GormEmployeeRepository) List(role *models.RoleCode) ([]models.Employee, error) {
	query := r.db.Order("last_name ASC, first_name ASC")
	if role != nil {
		query = query.Where("role_code = ?", *role)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *GormEmployeeRepository) CountActiveByRole(role models.RoleCode) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Employee{}).
		Scopes(database.ActiveIn("employees")).
		Where("role_code = ?", role).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SetOnDuty upserts the employee's duty row
func (r *GormEmployeeRepository) SetOnDuty(employeeID uint64, onDuty bool) error {
	status := models.EmployeeDutyStatus{EmployeeID: employeeID, OnDuty: onDuty}
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"on_duty", "updated_at"}),
		}).
		Create(&status).Error
}

func (r *GormEmployeeRepository) IsOnDuty(employeeID uint64) (bool, error) {
	var statuses []models.EmployeeDutyStatus
	if err := r.db.Where("employee_id = ?", employeeID).Limit(1).Find(&statuses).Error; err != nil {
		return false, err
	}
	return len(statuses) > 0 && statuses[0].OnDuty, nil
}

func (r *GormEmployeeRepository) CountOnDuty(role models.RoleCode) (int64, error) {
	var count int64
	if err := r.db.Model(&models.EmployeeDutyStatus{}).
		Joins("JOIN employees ON employees.id = employee_duty_statuses.employee_id").
		Scopes(database.ActiveIn("employees")).
		Where("employees.role_code = ? AND employee_duty_statuses.on_duty = ?", role, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
