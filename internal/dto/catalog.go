package dto

import (
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/services"
)

// TableDTO represents a dining table in API responses
type TableDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Occupied    bool   `json:"occupied"`
	Active      bool   `json:"active"`
}

// MenuItemDTO represents a menu item in API responses
type MenuItemDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Active      bool   `json:"active"`
}

// MenuCategoryDTO groups menu items under a category
type MenuCategoryDTO struct {
	Category string        `json:"category"`
	Items    []MenuItemDTO `json:"items"`
}

// ToggleResponse is returned by every toggle endpoint
type ToggleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// AvailabilityResponse answers an availability check
type AvailabilityResponse struct {
	Available bool     `json:"available"`
	Message   string   `json:"message"`
	Date      string   `json:"date"`
	Table     TableDTO `json:"table"`
}

// ToTableDTO converts a table model to DTO
func ToTableDTO(t models.DiningTable) TableDTO {
	return TableDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Location:    t.Location,
		Occupied:    t.Occupied,
		Active:      t.Active,
	}
}

// ToTableDTOs converts a slice of tables
func ToTableDTOs(tables []models.DiningTable) []TableDTO {
	out := make([]TableDTO, len(tables))
	for i, t := range tables {
		out[i] = ToTableDTO(t)
	}
	return out
}

// ToMenuItemDTO converts a menu item model to DTO
func ToMenuItemDTO(m models.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Active:      m.Active,
	}
}

// ToMenuItemDTOs converts a slice of menu items
func ToMenuItemDTOs(items []models.MenuItem) []MenuItemDTO {
	out := make([]MenuItemDTO, len(items))
	for i, m := range items {
		out[i] = ToMenuItemDTO(m)
	}
	return out
}

// ToMenuCategoryDTOs converts the grouped public menu
func ToMenuCategoryDTOs(categories []services.MenuCategory) []MenuCategoryDTO {
	out := make([]MenuCategoryDTO, len(categories))
	for i, c := range categories {
		out[i] = MenuCategoryDTO{Category: c.Category, Items: ToMenuItemDTOs(c.Items)}
	}
	return out
}
