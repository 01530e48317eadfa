package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/reserfast/reserfast-api/internal/utils"
)

var (
	ErrTableNotFound    = errors.New("table not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrTitleTaken       = errors.New("a menu item with this title already exists")
	ErrInvalidPrice     = errors.New("price must be a positive integer")
)

// CatalogService manages dining tables and menu items.
type CatalogService struct {
	tableRepo repository.TableRepository
	menuRepo  repository.MenuRepository
	images    storage.ImageStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(tableRepo repository.TableRepository, menuRepo repository.MenuRepository, images storage.ImageStore) *CatalogService {
	return &CatalogService{
		tableRepo: tableRepo,
		menuRepo:  menuRepo,
		images:    images,
	}
}

// TableInput holds the editable fields of a dining table.
type TableInput struct {
	Name        string
	Description string
	Location    string
	Occupied    bool
}

// MenuItemInput holds the editable fields of a menu item. Image is optional;
// when nil on update the current image is kept.
type MenuItemInput struct {
	Title       string
	Description string
	Category    string
	Price       int64
	Image       *storage.Upload
}

// MenuCategory groups active items by category for the public menu.
type MenuCategory struct {
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// CreateTable adds an active table.
func (s *CatalogService) CreateTable(input TableInput, creatorID uint64) (*models.DiningTable, error) {
	if err := validateTable(input); err != nil {
		return nil, err
	}

	table := &models.DiningTable{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Occupied:    input.Occupied,
		CreatedByID: &creatorID,
		Activatable: models.Activatable{Active: true},
	}
	if err := s.tableRepo.Create(table); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

// UpdateTable edits a table in any state.
func (s *CatalogService) UpdateTable(id uint64, input TableInput) (*models.DiningTable, error) {
	table, err := s.GetTable(id)
	if err != nil {
		return nil, err
	}
	if err := validateTable(input); err != nil {
		return nil, err
	}

	table.Name = strings.TrimSpace(input.Name)
	table.Description = strings.TrimSpace(input.Description)
	table.Location = strings.TrimSpace(input.Location)
	table.Occupied = input.Occupied

	if err := s.tableRepo.Update(table); err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return table, nil
}

// GetTable returns a table in any state.
func (s *CatalogService) GetTable(id uint64) (*models.DiningTable, error) {
	table, err := s.tableRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to find table: %w", err)
	}
	return table, nil
}

// ListTables lists all tables, or only active ones.
func (s *CatalogService) ListTables(activeOnly bool) ([]models.DiningTable, error) {
	var (
		tables []models.DiningTable
		err    error
	)
	if activeOnly {
		tables, err = s.tableRepo.ListActive("name ASC")
	} else {
		tables, err = s.tableRepo.ListAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// ToggleTable flips a table's active flag.
func (s *CatalogService) ToggleTable(id uint64) (bool, error) {
	active, err := s.tableRepo.Toggle(id)
	if err != nil {
		if isNotFound(err) {
			return false, ErrTableNotFound
		}
		return false, fmt.Errorf("failed to toggle table: %w", err)
	}
	return active, nil
}

// DeactivateTable soft-deletes a table.
func (s *CatalogService) DeactivateTable(id uint64) error {
	if err := s.tableRepo.SetActive(id, false); err != nil {
		if isNotFound(err) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to deactivate table: %w", err)
	}
	return nil
}

// CreateMenuItem adds an active menu item. The title must not be used by
// any other item.
func (s *CatalogService) CreateMenuItem(input MenuItemInput, creatorID uint64) (*models.MenuItem, error) {
	title, err := s.validateMenuItem(input, 0)
	if err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		CreatedByID: &creatorID,
		Activatable: models.Activatable{Active: true},
	}

	if input.Image != nil {
		url, err := s.images.SaveImage("menu", *input.Image)
		if err != nil {
			return nil, err
		}
		item.ImageURL = url
	}

	if err := s.menuRepo.Create(item); err != nil {
		discardImage(s.images, item.ImageURL)
		if isDuplicate(err) {
			return nil, ErrTitleTaken
		}
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

// UpdateMenuItem edits a menu item in any state.
func (s *CatalogService) UpdateMenuItem(id uint64, input MenuItemInput) (*models.MenuItem, error) {
	item, err := s.GetMenuItem(id)
	if err != nil {
		return nil, err
	}

	title, err := s.validateMenuItem(input, item.ID)
	if err != nil {
		return nil, err
	}

	item.Title = title
	item.Description = strings.TrimSpace(input.Description)
	item.Category = strings.TrimSpace(input.Category)
	item.Price = input.Price

	previousImage := item.ImageURL
	if input.Image != nil {
		url, err := s.images.SaveImage("menu", *input.Image)
		if err != nil {
			return nil, err
		}
		item.ImageURL = url
	}

	if err := s.menuRepo.Update(item); err != nil {
		if item.ImageURL != previousImage {
			discardImage(s.images, item.ImageURL)
		}
		if isDuplicate(err) {
			return nil, ErrTitleTaken
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	if item.ImageURL != previousImage {
		discardImage(s.images, previousImage)
	}
	return item, nil
}

// GetMenuItem returns a menu item in any state.
func (s *CatalogService) GetMenuItem(id uint64) (*models.MenuItem, error) {
	item, err := s.menuRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	return item, nil
}

// ListMenuItems lists all menu items, or only active ones.
func (s *CatalogService) ListMenuItems(activeOnly bool) ([]models.MenuItem, error) {
	var (
		items []models.MenuItem
		err   error
	)
	if activeOnly {
		items, err = s.menuRepo.ListActive("category ASC, title ASC")
	} else {
		items, err = s.menuRepo.ListAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// PublicMenu returns the active menu grouped by category.
func (s *CatalogService) PublicMenu() ([]MenuCategory, error) {
	items, err := s.ListMenuItems(true)
	if err != nil {
		return nil, err
	}

	groups := map[string][]models.MenuItem{}
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}

	categories := make([]MenuCategory, 0, len(groups))
	for category, grouped := range groups {
		categories = append(categories, MenuCategory{Category: category, Items: grouped})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})
	return categories, nil
}

// ToggleMenuItem flips a menu item's active flag.
func (s *CatalogService) ToggleMenuItem(id uint64) (bool, error) {
	active, err := s.menuRepo.Toggle(id)
	if err != nil {
		if isNotFound(err) {
			return false, ErrMenuItemNotFound
		}
		return false, fmt.Errorf("failed to toggle menu item: %w", err)
	}
	return active, nil
}

// DeactivateMenuItem soft-deletes a menu item.
func (s *CatalogService) DeactivateMenuItem(id uint64) error {
	if err := s.menuRepo.SetActive(id, false); err != nil {
		if isNotFound(err) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to deactivate menu item: %w", err)
	}
	return nil
}

func validateTable(input TableInput) error {
	fields := fieldErrors{}
	fields.require("name", input.Name)
	return fields.err()
}

func (s *CatalogService) validateMenuItem(input MenuItemInput, excludeID uint64) (string, error) {
	fields := fieldErrors{}
	fields.require("title", input.Title)
	fields.require("description", input.Description)
	fields.require("category", input.Category)
	if err := fields.err(); err != nil {
		return "", err
	}
	if input.Price <= 0 {
		return "", ErrInvalidPrice
	}

	title := strings.TrimSpace(input.Title)
	taken, err := s.menuRepo.TitleTaken(title, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check title: %w", err)
	}
	if taken {
		return "", ErrTitleTaken
	}
	return title, nil
}

// discardImage removes a stored file. Failures are only logged.
func discardImage(images storage.ImageStore, url string) {
	if url == "" {
		return
	}
	if err := images.Delete(url); err != nil {
		utils.Logger.WithError(err).WithField("url", url).Warn("failed to remove stored image")
	}
}
