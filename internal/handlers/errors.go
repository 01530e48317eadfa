package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/constants"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// respondError maps service errors to API error responses. Unknown errors
// are logged and reported as a generic internal error.
func respondError(c *gin.Context, err error) {
	var validation *services.ValidationError

	switch {
	case errors.As(err, &validation):
		apierrors.BadRequestWithDetails(c, "Invalid input", validation.Fields)
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrCurrentPasswordWrong),
		errors.Is(err, services.ErrInvalidRUT),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrDateInPast),
		errors.Is(err, services.ErrNoMenuItems),
		errors.Is(err, services.ErrMenuItemUnavailable),
		errors.Is(err, services.ErrDutyNotAllowed):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrUnsupportedFileType),
		errors.Is(err, storage.ErrEmptyFile):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrReservationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrRUTTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrTitleTaken),
		errors.Is(err, services.ErrTableUnavailable),
		errors.Is(err, services.ErrSelfLockout),
		errors.Is(err, services.ErrLastAdmin):
		apierrors.Conflict(c, err.Error())
	default:
		utils.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		apierrors.InternalError(c, "")
	}
}

// parseIDParam reads a positive numeric path parameter, responding with 400
// when it is malformed.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}
