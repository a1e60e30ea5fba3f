package app

import (
	"github.com/gin-gonic/gin"

	authHandler "github.com/vincehvac/servicepro-crm/internal/handlers/auth"
	"github.com/vincehvac/servicepro-crm/internal/handlers/crud"
	dashboardHandler "github.com/vincehvac/servicepro-crm/internal/handlers/dashboard"
	portalHandler "github.com/vincehvac/servicepro-crm/internal/handlers/portal"
	technicianHandler "github.com/vincehvac/servicepro-crm/internal/handlers/technician"
	"github.com/vincehvac/servicepro-crm/internal/middleware"

	domaincustomer "github.com/vincehvac/servicepro-crm/internal/domain/customer"
	domainjob "github.com/vincehvac/servicepro-crm/internal/domain/job"
	domaintechnician "github.com/vincehvac/servicepro-crm/internal/domain/technician"
)

type Handlers struct {
	Auth       *authHandler.AuthHandler
	Portal     *portalHandler.PortalHandler
	Dashboard  *dashboardHandler.DashboardHandler
	Technician *technicianHandler.TechnicianHandler

	Customers   *crud.Handler[domaincustomer.Customer, domaincustomer.CreateRequest, domaincustomer.UpdateRequest]
	Technicians *crud.Handler[domaintechnician.Technician, domaintechnician.CreateRequest, domaintechnician.UpdateRequest]
	Jobs        *crud.Handler[domainjob.Job, domainjob.CreateRequest, domainjob.UpdateRequest]

	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.Auth.Register)
		authPublic.POST("/login", h.Auth.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.Auth.Logout)
		authProtected.GET("/me", h.Auth.Me)
	}

	// ==================== Dashboard Resources ====================
	// Authentication only; roles are account metadata and are not
	// enforced on data routes.
	protected := api.Group("")
	protected.Use(h.AuthMiddleware.Auth())
	{
		h.Customers.Register(protected.Group("/customers"))
		h.Jobs.Register(protected.Group("/jobs"))

		technicians := protected.Group("/technicians")
		h.Technicians.Register(technicians)
		technicians.PUT("/:id/toggle-status", h.Technician.ToggleStatus)

		protected.GET("/dashboard/stats", h.Dashboard.Stats)
	}

	// ==================== Customer Portal ====================
	portal := api.Group("/portal")
	{
		portal.POST("/register", h.Portal.Register)
		portal.POST("/login", h.Portal.Login)

		portalProtected := portal.Group("")
		portalProtected.Use(h.AuthMiddleware.Auth())
		{
			portalProtected.GET("/jobs", h.Portal.Jobs)
		}
	}
}
