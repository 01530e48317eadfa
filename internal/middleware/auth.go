package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/constants"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/session"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// LoadSession resolves the principal of the request and stores it in the
// context. Sessions carrying both principal markers, or pointing at a
// principal that no longer exists or is inactive, are cleared.
func LoadSession(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := sessions.Default(c)
		state, conflict := session.Resolve(store)

		if conflict {
			utils.Logger.WithField("ip", c.ClientIP()).Warn("conflicting customer and employee session, clearing")
			clearSession(store)
		}

		switch state.Kind {
		case session.Customer:
			if _, err := auth.ActiveCustomer(state.CustomerID); err != nil {
				if !errors.Is(err, services.ErrPrincipalInactive) {
					utils.Logger.WithError(err).Error("failed to validate customer session")
					apierrors.InternalError(c, "")
					c.Abort()
					return
				}
				clearSession(store)
				state = session.State{Kind: session.Anonymous}
			}
		case session.Employee:
			employee, err := auth.ActiveEmployee(state.EmployeeID)
			if err != nil {
				if !errors.Is(err, services.ErrPrincipalInactive) {
					utils.Logger.WithError(err).Error("failed to validate employee session")
					apierrors.InternalError(c, "")
					c.Abort()
					return
				}
				clearSession(store)
				state = session.State{Kind: session.Anonymous}
				break
			}
			if employee.RoleCode != state.Role {
				state.Role = employee.RoleCode
				store.Set(constants.SessionEmployeeRole, string(employee.RoleCode))
				if err := store.Save(); err != nil {
					utils.Logger.WithError(err).Warn("failed to refresh employee role in session")
				}
			}
		}

		c.Set(constants.ContextKeySession, state)
		c.Next()
	}
}

// CurrentSession returns the state resolved by LoadSession.
func CurrentSession(c *gin.Context) session.State {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return session.State{Kind: session.Anonymous}
	}
	state, ok := value.(session.State)
	if !ok {
		return session.State{Kind: session.Anonymous}
	}
	return state
}

// RequireCustomer admits only customer sessions
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsCustomer() {
			apierrors.Unauthorized(c, "Customer login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireEmployee admits employee sessions holding one of roles; with no
// roles any employee is admitted
func RequireEmployee(roles ...models.RoleCode) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := CurrentSession(c)
		if !state.IsEmployee() {
			apierrors.Unauthorized(c, "Staff login required")
			c.Abort()
			return
		}
		if !state.HasRole(roles...) {
			apierrors.Forbidden(c, "Your role cannot perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

func clearSession(store sessions.Session) {
	store.Clear()
	if err := store.Save(); err != nil {
		utils.Logger.WithError(err).Warn("failed to clear session")
	}
}
