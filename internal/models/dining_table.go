package models

import "time"

// DiningTable is a bookable seating resource.
type DiningTable struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Location    string  `gorm:"type:varchar(100)" json:"location"`
	Occupied    bool    `gorm:"not null" json:"occupied"`
	CreatedByID *uint64 `json:"created_by_id,omitempty"`
	Activatable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
