package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	FirstName      string     `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName     string     `gorm:"type:varchar(100)" json:"middle_name"`
	LastName       string     `gorm:"type:varchar(100);not null" json:"last_name"`
	SecondLastName string     `gorm:"type:varchar(100)" json:"second_last_name"`
	RUT            string     `gorm:"column:rut;type:varchar(12);uniqueIndex;not null" json:"rut"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	GenderID       *uint64    `json:"gender_id,omitempty"`
	Phone          string     `gorm:"type:varchar(20)" json:"phone"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	PhotoURL       string     `gorm:"type:varchar(255)" json:"photo_url"`
	Activatable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Gender       *Gender       `gorm:"foreignKey:GenderID" json:"gender,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:CustomerID" json:"-"`
}

// FullName joins the non-empty name parts.
func (c Customer) FullName() string {
	return joinNames(c.FirstName, c.MiddleName, c.LastName, c.SecondLastName)
}

func joinNames(parts ...string) string {
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return strings.Join(names, " ")
}
