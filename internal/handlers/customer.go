package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/dto"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/middleware"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// CustomerHandler serves registration and the customer's own profile.
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Register creates a customer account. Accepts JSON or a multipart form
// with an optional "photo" file.
func (h *CustomerHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		FirstName       string  `json:"first_name" form:"first_name" binding:"required"`
		MiddleName      string  `json:"middle_name" form:"middle_name"`
		LastName        string  `json:"last_name" form:"last_name" binding:"required"`
		SecondLastName  string  `json:"second_last_name" form:"second_last_name"`
		RUT             string  `json:"rut" form:"rut" binding:"required"`
		Email           string  `json:"email" form:"email" binding:"required"`
		Password        string  `json:"password" form:"password" binding:"required"`
		PasswordConfirm string  `json:"password_confirm" form:"password_confirm" binding:"required"`
		GenderID        *uint64 `json:"gender_id" form:"gender_id"`
		Phone           string  `json:"phone" form:"phone"`
		BirthDate       string  `json:"birth_date" form:"birth_date"`
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	birthDate, err := optionalDate(req.BirthDate)
	if err != nil {
		apierrors.BadRequest(c, "birth_date must use YYYY-MM-DD")
		return
	}

	photo, closePhoto, err := formUpload(c, "photo")
	if err != nil {
		apierrors.BadRequest(c, "Invalid photo upload")
		return
	}
	defer closePhoto()

	customer, err := h.customerService.Register(services.RegisterCustomerInput{
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		SecondLastName:  req.SecondLastName,
		RUT:             req.RUT,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		GenderID:        req.GenderID,
		Phone:           req.Phone,
		BirthDate:       birthDate,
		Photo:           photo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerDTO(*customer))
}

// GetProfile returns the logged-in customer's profile.
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	state := middleware.CurrentSession(c)

	profile, err := h.customerService.GetProfile(state.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerProfileDTO(*profile))
}

// UpdateProfile edits the logged-in customer's profile. Supplying
// new_password requires current_password.
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	type UpdateProfileRequest struct {
		FirstName          string  `json:"first_name" form:"first_name" binding:"required"`
		MiddleName         string  `json:"middle_name" form:"middle_name"`
		LastName           string  `json:"last_name" form:"last_name" binding:"required"`
		SecondLastName     string  `json:"second_last_name" form:"second_last_name"`
		Email              string  `json:"email" form:"email" binding:"required"`
		GenderID           *uint64 `json:"gender_id" form:"gender_id"`
		Phone              string  `json:"phone" form:"phone"`
		BirthDate          string  `json:"birth_date" form:"birth_date"`
		CurrentPassword    string  `json:"current_password" form:"current_password"`
		NewPassword        string  `json:"new_password" form:"new_password"`
		NewPasswordConfirm string  `json:"new_password_confirm" form:"new_password_confirm"`
	}

	state := middleware.CurrentSession(c)

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	birthDate, err := optionalDate(req.BirthDate)
	if err != nil {
		apierrors.BadRequest(c, "birth_date must use YYYY-MM-DD")
		return
	}

	photo, closePhoto, err := formUpload(c, "photo")
	if err != nil {
		apierrors.BadRequest(c, "Invalid photo upload")
		return
	}
	defer closePhoto()

	customer, err := h.customerService.UpdateProfile(state.CustomerID, services.UpdateCustomerInput{
		FirstName:          req.FirstName,
		MiddleName:         req.MiddleName,
		LastName:           req.LastName,
		SecondLastName:     req.SecondLastName,
		Email:              req.Email,
		GenderID:           req.GenderID,
		Phone:              req.Phone,
		BirthDate:          birthDate,
		Photo:              photo,
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerDTO(*customer))
}

// Deactivate closes the logged-in customer's account and ends the session.
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	state := middleware.CurrentSession(c)

	if err := h.customerService.Deactivate(state.CustomerID); err != nil {
		respondError(c, err)
		return
	}

	store := sessions.Default(c)
	store.Clear()
	if err := store.Save(); err != nil {
		utils.Logger.WithError(err).Warn("failed to clear session after deactivation")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deactivated",
	})
}
