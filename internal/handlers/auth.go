package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/constants"
	"github.com/reserfast/reserfast-api/internal/dto"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/middleware"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/session"
)

// AuthHandler coordinates login, logout and session inspection.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CustomerLogin authenticates a customer by email and starts a customer session.
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.authService.LoginCustomer(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	store := sessions.Default(c)
	store.Clear()
	store.Set(constants.SessionCustomerID, customer.ID)
	if err := store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerDTO(*customer))
}

// EmployeeLogin authenticates an employee by username and starts a staff session.
func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.LoginEmployee(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	store := sessions.Default(c)
	store.Clear()
	store.Set(constants.SessionEmployeeID, employee.ID)
	store.Set(constants.SessionEmployeeRole, string(employee.RoleCode))
	if err := store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// Logout removes all session data.
func (h *AuthHandler) Logout(c *gin.Context) {
	store := sessions.Default(c)
	store.Clear()
	if err := store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Session describes the principal of the current session, if any.
func (h *AuthHandler) Session(c *gin.Context) {
	state := middleware.CurrentSession(c)
	response := dto.SessionDTO{Kind: state.Kind.String()}

	switch state.Kind {
	case session.Customer:
		customer, err := h.authService.ActiveCustomer(state.CustomerID)
		if err != nil {
			respondError(c, err)
			return
		}
		customerDTO := dto.ToCustomerDTO(*customer)
		response.Customer = &customerDTO
	case session.Employee:
		employee, err := h.authService.ActiveEmployee(state.EmployeeID)
		if err != nil {
			respondError(c, err)
			return
		}
		employeeDTO := dto.ToEmployeeDTO(*employee)
		response.Employee = &employeeDTO
	}

	c.JSON(http.StatusOK, response)
}
