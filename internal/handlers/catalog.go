package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/dto"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/middleware"
	"github.com/reserfast/reserfast-api/internal/services"
)

// CatalogHandler serves tables and menu items.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

type tableRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Occupied    bool   `json:"occupied"`
}

type menuItemRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`
	Category    string `json:"category" form:"category" binding:"required"`
	Price       int64  `json:"price" form:"price" binding:"required"`
}

// PublicMenu returns the active menu grouped by category.
func (h *CatalogHandler) PublicMenu(c *gin.Context) {
	categories, err := h.catalogService.PublicMenu()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": dto.ToMenuCategoryDTOs(categories),
	})
}

// ListTables returns every table, active or not.
func (h *CatalogHandler) ListTables(c *gin.Context) {
	tables, err := h.catalogService.ListTables(false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tables": dto.ToTableDTOs(tables),
	})
}

// CreateTable adds a table.
func (h *CatalogHandler) CreateTable(c *gin.Context) {
	state := middleware.CurrentSession(c)

	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.catalogService.CreateTable(services.TableInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Occupied:    req.Occupied,
	}, state.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTableDTO(*table))
}

// UpdateTable edits a table.
func (h *CatalogHandler) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.catalogService.UpdateTable(id, services.TableInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Occupied:    req.Occupied,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTableDTO(*table))
}

// ToggleTable flips a table's active flag.
func (h *CatalogHandler) ToggleTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	active, err := h.catalogService.ToggleTable(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleResponse("Table", active))
}

// DeactivateTable soft-deletes a table.
func (h *CatalogHandler) DeactivateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeactivateTable(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleResponse("Table", false))
}

// ListMenuItems returns every menu item, active or not.
func (h *CatalogHandler) ListMenuItems(c *gin.Context) {
	items, err := h.catalogService.ListMenuItems(false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"menu_items": dto.ToMenuItemDTOs(items),
	})
}

// GetMenuItem returns a menu item.
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetMenuItem(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMenuItemDTO(*item))
}

// CreateMenuItem adds a menu item. Accepts JSON or a multipart form with an
// optional "image" file.
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	state := middleware.CurrentSession(c)

	var req menuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}
	defer closeImage()

	item, err := h.catalogService.CreateMenuItem(services.MenuItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Image:       image,
	}, state.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMenuItemDTO(*item))
}

// UpdateMenuItem edits a menu item, replacing the image when one is sent.
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req menuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}
	defer closeImage()

	item, err := h.catalogService.UpdateMenuItem(id, services.MenuItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Image:       image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMenuItemDTO(*item))
}

// ToggleMenuItem flips a menu item's active flag.
func (h *CatalogHandler) ToggleMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	active, err := h.catalogService.ToggleMenuItem(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleResponse("Menu item", active))
}

// DeactivateMenuItem soft-deletes a menu item.
func (h *CatalogHandler) DeactivateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeactivateMenuItem(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleResponse("Menu item", false))
}

func toggleResponse(subject string, active bool) dto.ToggleResponse {
	message := subject + " deactivated"
	if active {
		message = subject + " activated"
	}
	return dto.ToggleResponse{Success: true, Message: message, Active: active}
}
