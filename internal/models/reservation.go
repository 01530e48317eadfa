package models

import "time"

// Reservation is the header of a booking. Its table and dishes live in the
// link tables; Total is the sum of active dish prices at the last save.
type Reservation struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	CustomerID  uint64    `gorm:"not null;index" json:"customer_id"`
	StartDate   time.Time `gorm:"type:date;not null;index" json:"start_date"`
	Total       int64     `gorm:"not null" json:"total"`
	CreatedByID *uint64   `json:"created_by_id,omitempty"`
	Activatable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Customer   *Customer             `gorm:"foreignKey:CustomerID" json:"-"`
	TableLinks []ReservationTable    `gorm:"foreignKey:ReservationID" json:"-"`
	MenuLinks  []ReservationMenuItem `gorm:"foreignKey:ReservationID" json:"-"`
}

// ReservationTable assigns a table to a reservation. At most one link per
// reservation is active.
type ReservationTable struct {
	ID            uint64 `gorm:"primarykey" json:"id"`
	ReservationID uint64 `gorm:"not null;index" json:"reservation_id"`
	TableID       uint64 `gorm:"not null;index" json:"table_id"`
	Activatable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Table *DiningTable `gorm:"foreignKey:TableID" json:"table,omitempty"`
}

// ReservationMenuItem is one ordered dish of a reservation.
type ReservationMenuItem struct {
	ID            uint64 `gorm:"primarykey" json:"id"`
	ReservationID uint64 `gorm:"not null;uniqueIndex:idx_reservation_menu_item" json:"reservation_id"`
	MenuItemID    uint64 `gorm:"not null;uniqueIndex:idx_reservation_menu_item;index" json:"menu_item_id"`
	Activatable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}
