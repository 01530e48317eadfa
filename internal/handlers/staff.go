package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/dto"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/middleware"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// StaffHandler serves endpoints available to every employee.
type StaffHandler struct {
	employeeService    *services.EmployeeService
	reservationService *services.ReservationService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(employeeService *services.EmployeeService, reservationService *services.ReservationService) *StaffHandler {
	return &StaffHandler{
		employeeService:    employeeService,
		reservationService: reservationService,
	}
}

// GetProfile returns the logged-in employee and their duty status.
func (h *StaffHandler) GetProfile(c *gin.Context) {
	state := middleware.CurrentSession(c)

	employee, err := h.employeeService.Get(state.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	onDuty, err := h.employeeService.IsOnDuty(employee.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee": dto.ToEmployeeDTO(*employee),
		"on_duty":  onDuty,
	})
}

// UpdateProfile edits the logged-in employee's own profile.
func (h *StaffHandler) UpdateProfile(c *gin.Context) {
	type UpdateProfileRequest struct {
		FirstName          string  `json:"first_name" binding:"required"`
		LastName           string  `json:"last_name" binding:"required"`
		SecondLastName     string  `json:"second_last_name"`
		GenderID           *uint64 `json:"gender_id"`
		CurrentPassword    string  `json:"current_password"`
		NewPassword        string  `json:"new_password"`
		NewPasswordConfirm string  `json:"new_password_confirm"`
	}

	state := middleware.CurrentSession(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.UpdateSelf(state.EmployeeID, services.UpdateSelfInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		SecondLastName:     req.SecondLastName,
		GenderID:           req.GenderID,
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// SetDuty records whether the logged-in waiter or cook is on shift.
func (h *StaffHandler) SetDuty(c *gin.Context) {
	type DutyRequest struct {
		OnDuty *bool `json:"on_duty" binding:"required"`
	}

	state := middleware.CurrentSession(c)

	var req DutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.employeeService.SetOnDuty(state.EmployeeID, state.Role, *req.OnDuty); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"on_duty": *req.OnDuty,
	})
}

// TodaysReservations lists today's active reservations for the floor.
func (h *StaffHandler) TodaysReservations(c *gin.Context) {
	reservations, err := h.reservationService.TodaysReservations()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         utils.FormatDate(h.reservationService.Today()),
		"reservations": dto.ToReservationDTOs(reservations, true),
	})
}

// GetReservation returns any reservation with customer contact details.
func (h *StaffHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.reservationService.GetReservation(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReservationDTO(*summary, true))
}
