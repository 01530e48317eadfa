package dto

import (
	"time"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID             uint64  `json:"id"`
	FirstName      string  `json:"first_name"`
	MiddleName     string  `json:"middle_name,omitempty"`
	LastName       string  `json:"last_name"`
	SecondLastName string  `json:"second_last_name,omitempty"`
	FullName       string  `json:"full_name"`
	RUT            string  `json:"rut"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	GenderID       *uint64 `json:"gender_id,omitempty"`
	BirthDate      string  `json:"birth_date,omitempty"`
	PhotoURL       string  `json:"photo_url,omitempty"`
	Active         bool    `json:"active"`
}

// CustomerContactDTO is the subset of a customer shown to staff
type CustomerContactDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// CustomerProfileDTO is a customer with derived profile data
type CustomerProfileDTO struct {
	CustomerDTO
	Age              *int  `json:"age,omitempty"`
	ReservationCount int64 `json:"reservation_count"`
}

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID             uint64          `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	SecondLastName string          `json:"second_last_name,omitempty"`
	FullName       string          `json:"full_name"`
	Username       string          `json:"username"`
	Role           models.RoleCode `json:"role"`
	GenderID       *uint64         `json:"gender_id,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SessionDTO describes the principal bound to the current session
type SessionDTO struct {
	Kind     string       `json:"kind"`
	Customer *CustomerDTO `json:"customer,omitempty"`
	Employee *EmployeeDTO `json:"employee,omitempty"`
}

// ToCustomerDTO converts a customer model to DTO
func ToCustomerDTO(c models.Customer) CustomerDTO {
	out := CustomerDTO{
		ID:             c.ID,
		FirstName:      c.FirstName,
		MiddleName:     c.MiddleName,
		LastName:       c.LastName,
		SecondLastName: c.SecondLastName,
		FullName:       c.FullName(),
		RUT:            c.RUT,
		Email:          c.Email,
		Phone:          c.Phone,
		GenderID:       c.GenderID,
		PhotoURL:       c.PhotoURL,
		Active:         c.Active,
	}
	if c.BirthDate != nil {
		out.BirthDate = utils.FormatDate(*c.BirthDate)
	}
	return out
}

// ToCustomerContactDTO converts a customer to its staff-facing contact card
func ToCustomerContactDTO(c *models.Customer) *CustomerContactDTO {
	if c == nil {
		return nil
	}
	return &CustomerContactDTO{
		ID:       c.ID,
		FullName: c.FullName(),
		Email:    c.Email,
		Phone:    c.Phone,
	}
}

// ToCustomerProfileDTO converts a profile to DTO
func ToCustomerProfileDTO(p services.CustomerProfile) CustomerProfileDTO {
	return CustomerProfileDTO{
		CustomerDTO:      ToCustomerDTO(*p.Customer),
		Age:              p.Age,
		ReservationCount: p.ReservationCount,
	}
}

// ToCustomerDTOs converts a slice of customers
func ToCustomerDTOs(customers []models.Customer) []CustomerDTO {
	out := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		out[i] = ToCustomerDTO(c)
	}
	return out
}

// ToEmployeeDTO converts an employee model to DTO
func ToEmployeeDTO(e models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		SecondLastName: e.SecondLastName,
		FullName:       e.FullName(),
		Username:       e.Username,
		Role:           e.RoleCode,
		GenderID:       e.GenderID,
		Active:         e.Active,
		CreatedAt:      e.CreatedAt,
	}
}

// ToEmployeeDTOs converts a slice of employees
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	out := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		out[i] = ToEmployeeDTO(e)
	}
	return out
}
