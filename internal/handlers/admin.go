package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/dto"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/middleware"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// AdminHandler serves administrator-only account and reporting endpoints.
type AdminHandler struct {
	employeeService    *services.EmployeeService
	customerService    *services.CustomerService
	reservationService *services.ReservationService
	dashboardService   *services.DashboardService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	employeeService *services.EmployeeService,
	customerService *services.CustomerService,
	reservationService *services.ReservationService,
	dashboardService *services.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		employeeService:    employeeService,
		customerService:    customerService,
		reservationService: reservationService,
		dashboardService:   dashboardService,
	}
}

type employeeRequest struct {
	FirstName       string          `json:"first_name" binding:"required"`
	LastName        string          `json:"last_name" binding:"required"`
	SecondLastName  string          `json:"second_last_name"`
	Username        string          `json:"username" binding:"required"`
	Role            models.RoleCode `json:"role" binding:"required"`
	GenderID        *uint64         `json:"gender_id"`
	Password        string          `json:"password"`
	PasswordConfirm string          `json:"password_confirm"`
}

type passwordRequest struct {
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// Dashboard returns active entity counts.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListEmployees returns employees, optionally filtered with ?role=.
func (h *AdminHandler) ListEmployees(c *gin.Context) {
	var role *models.RoleCode
	if raw := c.Query("role"); raw != "" {
		r := models.RoleCode(raw)
		role = &r
	}

	employees, err := h.employeeService.List(role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToEmployeeDTOs(employees),
	})
}

// CreateEmployee adds a staff account.
func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.Create(services.CreateEmployeeInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		SecondLastName:  req.SecondLastName,
		Username:        req.Username,
		Role:            req.Role,
		GenderID:        req.GenderID,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// UpdateEmployee edits a staff account; a non-empty password resets it.
func (h *AdminHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	state := middleware.CurrentSession(c)
	employee, err := h.employeeService.Update(id, state.EmployeeID, services.UpdateEmployeeInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		SecondLastName:  req.SecondLastName,
		Username:        req.Username,
		Role:            req.Role,
		GenderID:        req.GenderID,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// ToggleEmployee flips an employee's active flag.
func (h *AdminHandler) ToggleEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	state := middleware.CurrentSession(c)
	active, err := h.employeeService.Toggle(id, state.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleResponse("Employee", active))
}

// DeactivateEmployee soft-deletes an employee.
func (h *AdminHandler) DeactivateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	state := middleware.CurrentSession(c)
	if err := h.employeeService.Deactivate(id, state.EmployeeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleResponse("Employee", false))
}

// SetEmployeePassword resets an employee's password.
func (h *AdminHandler) SetEmployeePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.employeeService.SetPassword(id, req.Password, req.PasswordConfirm); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// ListCustomers returns customers with pagination.
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.customerService.List(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": dto.ToCustomerDTOs(customers),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// DeactivateCustomer soft-deletes a customer account.
func (h *AdminHandler) DeactivateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toggleResponse("Customer", false))
}

// SetCustomerPassword resets a customer's password.
func (h *AdminHandler) SetCustomerPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.customerService.SetPassword(id, req.Password, req.PasswordConfirm); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// ListReservations returns every reservation with pagination.
func (h *AdminHandler) ListReservations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	reservations, total, err := h.reservationService.ListAll(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": dto.ToReservationDTOs(reservations, true),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
