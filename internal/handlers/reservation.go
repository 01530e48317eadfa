package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/dto"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/middleware"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// ReservationHandler serves customer reservations and the availability check.
type ReservationHandler struct {
	reservationService *services.ReservationService
	catalogService     *services.CatalogService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(reservationService *services.ReservationService, catalogService *services.CatalogService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		catalogService:     catalogService,
	}
}

type reservationRequest struct {
	Date        string   `json:"date" binding:"required"`
	TableID     uint64   `json:"table_id" binding:"required"`
	MenuItemIDs []uint64 `json:"menu_item_ids"`
}

// ListReservations returns the customer's reservations split into future and past.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	state := middleware.CurrentSession(c)

	future, past, err := h.reservationService.ListReservations(state.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReservationListResponse{
		Future: dto.ToReservationDTOs(future, false),
		Past:   dto.ToReservationDTOs(past, false),
	})
}

// CreateReservation books a table for the customer.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	state := middleware.CurrentSession(c)

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		apierrors.BadRequest(c, "date must use YYYY-MM-DD")
		return
	}

	summary, err := h.reservationService.CreateReservation(services.CreateReservationInput{
		CustomerID:  state.CustomerID,
		Date:        date,
		TableID:     req.TableID,
		MenuItemIDs: req.MenuItemIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReservationDTO(*summary, false))
}

// GetReservation returns one of the customer's reservations.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	state := middleware.CurrentSession(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.reservationService.GetOwnedReservation(id, state.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationDTO(*summary, false))
}

// UpdateReservation edits the date, table and items of an active reservation.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	state := middleware.CurrentSession(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		apierrors.BadRequest(c, "date must use YYYY-MM-DD")
		return
	}

	summary, err := h.reservationService.EditReservation(services.EditReservationInput{
		ReservationID: id,
		CustomerID:    state.CustomerID,
		Date:          date,
		TableID:       req.TableID,
		MenuItemIDs:   req.MenuItemIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationDTO(*summary, false))
}

// CancelReservation deactivates one of the customer's reservations.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	state := middleware.CurrentSession(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.CancelReservation(id, state.CustomerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reservation cancelled",
	})
}

// ListTables returns the active tables a customer can book.
func (h *ReservationHandler) ListTables(c *gin.Context) {
	tables, err := h.catalogService.ListTables(true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tables": dto.ToTableDTOs(tables),
	})
}

// CheckAvailability answers whether a table is free on a date.
// Query: date=YYYY-MM-DD, optional exclude_reservation_id.
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	tableID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		apierrors.BadRequest(c, "date must use YYYY-MM-DD")
		return
	}

	var exclude *uint64
	if raw := c.Query("exclude_reservation_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid exclude_reservation_id")
			return
		}
		exclude = &id
	}

	availability, err := h.reservationService.CheckAvailability(tableID, date, exclude)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		Available: availability.Available,
		Message:   availability.Message,
		Date:      utils.FormatDate(date),
		Table:     dto.ToTableDTO(*availability.Table),
	})
}
