package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/config"
	"github.com/reserfast/reserfast-api/internal/constants"
	apierrors "github.com/reserfast/reserfast-api/internal/errors"
	"github.com/reserfast/reserfast-api/internal/handlers"
	"github.com/reserfast/reserfast-api/internal/middleware"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/services"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/reserfast/reserfast-api/internal/utils"
	"gorm.io/gorm"
)

// Deps carries everything the router needs from main.
type Deps struct {
	Config       *config.Config
	DB           *gorm.DB
	SessionStore sessions.Store
	Images       *storage.LocalStorage
	// Now overrides the reservation clock; time.Now when nil.
	Now func() time.Time
}

// New constructs the gin engine with all routes and middlewares applied.
func New(deps Deps) *gin.Engine {
	cfg := deps.Config

	customerRepo := repository.NewCustomerRepository(deps.DB)
	employeeRepo := repository.NewEmployeeRepository(deps.DB)
	tableRepo := repository.NewTableRepository(deps.DB)
	menuRepo := repository.NewMenuRepository(deps.DB)
	reservationRepo := repository.NewReservationRepository(deps.DB)

	authService := services.NewAuthService(customerRepo, employeeRepo)
	customerService := services.NewCustomerService(customerRepo, deps.Images)
	employeeService := services.NewEmployeeService(employeeRepo)
	catalogService := services.NewCatalogService(tableRepo, menuRepo, deps.Images)
	reservationService := services.NewReservationService(reservationRepo, tableRepo, menuRepo, services.ReservationOptions{
		AllowOverbooking: cfg.AllowOverbooking,
		Location:         utils.LoadLocation(cfg.Timezone),
		Now:              deps.Now,
	})
	dashboardService := services.NewDashboardService(customerRepo, employeeRepo, tableRepo, menuRepo, reservationRepo)

	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	reservationHandler := handlers.NewReservationHandler(reservationService, catalogService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	staffHandler := handlers.NewStaffHandler(employeeService, reservationService)
	adminHandler := handlers.NewAdminHandler(employeeService, customerService, reservationService, dashboardService)
	loginLimiter := middleware.NewLoginLimiter(cfg.LoginRatePerMinute)

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	r.Static(deps.Images.BaseURL(), deps.Images.Root())

	// Health endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Reserfast API is running",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		if err := deps.DB.Exec("SELECT 1").Error; err != nil {
			apierrors.ServiceUnavailable(c, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.LoadSession(authService))
	{
		api.POST("/customers/register", customerHandler.Register)
		api.GET("/menu", catalogHandler.PublicMenu)

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/customer/login", loginLimiter.Middleware(), authHandler.CustomerLogin)
			auth.POST("/employee/login", loginLimiter.Middleware(), authHandler.EmployeeLogin)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.Session)
		}

		// Customer routes
		customer := api.Group("")
		customer.Use(middleware.RequireCustomer())
		{
			customer.GET("/me/profile", customerHandler.GetProfile)
			customer.PUT("/me/profile", customerHandler.UpdateProfile)
			customer.POST("/me/deactivate", customerHandler.Deactivate)

			customer.GET("/tables", reservationHandler.ListTables)
			customer.GET("/tables/:id/availability", reservationHandler.CheckAvailability)

			customer.GET("/reservations", reservationHandler.ListReservations)
			customer.POST("/reservations", reservationHandler.CreateReservation)
			customer.GET("/reservations/:id", reservationHandler.GetReservation)
			customer.PUT("/reservations/:id", reservationHandler.UpdateReservation)
			customer.DELETE("/reservations/:id", reservationHandler.CancelReservation)
		}

		// Staff routes
		staff := api.Group("/staff")
		staff.Use(middleware.RequireEmployee())
		{
			staff.GET("/me", staffHandler.GetProfile)
			staff.PUT("/me", staffHandler.UpdateProfile)
			staff.POST("/me/duty", middleware.RequireEmployee(models.RoleWaiter, models.RoleCook), staffHandler.SetDuty)
			staff.GET("/reservations/today", middleware.RequireEmployee(models.RoleWaiter, models.RoleAdmin), staffHandler.TodaysReservations)
			staff.GET("/reservations/:id", staffHandler.GetReservation)
		}

		// Kitchen routes
		kitchen := api.Group("/kitchen")
		kitchen.Use(middleware.RequireEmployee(models.RoleCook, models.RoleAdmin))
		{
			kitchen.GET("/menu", catalogHandler.ListMenuItems)
			kitchen.POST("/menu", catalogHandler.CreateMenuItem)
			kitchen.GET("/menu/:id", catalogHandler.GetMenuItem)
			kitchen.PUT("/menu/:id", catalogHandler.UpdateMenuItem)
			kitchen.DELETE("/menu/:id", catalogHandler.DeactivateMenuItem)
			kitchen.POST("/menu/:id/toggle", catalogHandler.ToggleMenuItem)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireEmployee(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/reservations", adminHandler.ListReservations)

			admin.GET("/employees", adminHandler.ListEmployees)
			admin.POST("/employees", adminHandler.CreateEmployee)
			admin.PUT("/employees/:id", adminHandler.UpdateEmployee)
			admin.DELETE("/employees/:id", adminHandler.DeactivateEmployee)
			admin.POST("/employees/:id/toggle", adminHandler.ToggleEmployee)
			admin.PUT("/employees/:id/password", adminHandler.SetEmployeePassword)

			admin.GET("/customers", adminHandler.ListCustomers)
			admin.POST("/customers/:id/deactivate", adminHandler.DeactivateCustomer)
			admin.PUT("/customers/:id/password", adminHandler.SetCustomerPassword)

			admin.GET("/tables", catalogHandler.ListTables)
			admin.POST("/tables", catalogHandler.CreateTable)
			admin.PUT("/tables/:id", catalogHandler.UpdateTable)
			admin.DELETE("/tables/:id", catalogHandler.DeactivateTable)
			admin.POST("/tables/:id/toggle", catalogHandler.ToggleTable)
		}
	}

	return r
}
