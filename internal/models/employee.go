package models

import "time"

type Employee struct {
	ID             uint64   `gorm:"primarykey" json:"id"`
	FirstName      string   `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string   `gorm:"type:varchar(100);not null" json:"last_name"`
	SecondLastName string   `gorm:"type:varchar(100)" json:"second_last_name"`
	Username       string   `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash   string   `gorm:"type:varchar(255);not null" json:"-"`
	RoleCode       RoleCode `gorm:"type:varchar(20);not null;index" json:"role"`
	GenderID       *uint64  `json:"gender_id,omitempty"`
	Activatable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Role   *Role   `gorm:"foreignKey:RoleCode;references:Code" json:"-"`
	Gender *Gender `gorm:"foreignKey:GenderID" json:"gender,omitempty"`
}

func (e Employee) FullName() string {
	return joinNames(e.FirstName, e.LastName, e.SecondLastName)
}

// EmployeeDutyStatus records whether a waiter or cook is currently on shift.
type EmployeeDutyStatus struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	EmployeeID uint64    `gorm:"uniqueIndex;not null" json:"employee_id"`
	OnDuty     bool      `gorm:"not null" json:"on_duty"`
	UpdatedAt  time.Time `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}
