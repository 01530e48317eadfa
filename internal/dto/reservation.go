package dto

import (
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// ReservationDTO represents a reservation with its resolved table and items
type ReservationDTO struct {
	ID         uint64              `json:"id"`
	Date       string              `json:"date"`
	Total      int64               `json:"total"`
	Active     bool                `json:"active"`
	State      string              `json:"state"`
	Table      *TableDTO           `json:"table"`
	MenuItems  []MenuItemDTO       `json:"menu_items"`
	CustomerID uint64              `json:"customer_id"`
	Customer   *CustomerContactDTO `json:"customer,omitempty"`
}

// ReservationListResponse splits a customer's reservations
type ReservationListResponse struct {
	Future []ReservationDTO `json:"future"`
	Past   []ReservationDTO `json:"past"`
}

// ToReservationDTO converts a reservation summary to DTO. Customer contact
// data is only included when withCustomer is set.
func ToReservationDTO(s services.ReservationSummary, withCustomer bool) ReservationDTO {
	out := ReservationDTO{
		ID:         s.Reservation.ID,
		Date:       utils.FormatDate(s.Reservation.StartDate),
		Total:      s.Reservation.Total,
		Active:     s.Reservation.Active,
		State:      s.State,
		MenuItems:  ToMenuItemDTOs(s.MenuItems),
		CustomerID: s.Reservation.CustomerID,
	}
	if s.Table != nil {
		table := ToTableDTO(*s.Table)
		out.Table = &table
	}
	if withCustomer {
		out.Customer = ToCustomerContactDTO(s.Customer)
	}
	return out
}

// ToReservationDTOs converts a slice of reservation summaries
func ToReservationDTOs(summaries []services.ReservationSummary, withCustomer bool) []ReservationDTO {
	out := make([]ReservationDTO, len(summaries))
	for i, s := range summaries {
		out[i] = ToReservationDTO(s, withCustomer)
	}
	return out
}
