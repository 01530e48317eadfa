package models

import "time"

type MenuItem struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	Title       string  `gorm:"type:varchar(150);uniqueIndex;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Category    string  `gorm:"type:varchar(50);not null;index" json:"category"`
	Price       int64   `gorm:"not null" json:"price"`
	ImageURL    string  `gorm:"type:varchar(255)" json:"image_url"`
	CreatedByID *uint64 `json:"created_by_id,omitempty"`
	Activatable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy *Employee `gorm:"foreignKey:CreatedByID" json:"-"`
}
