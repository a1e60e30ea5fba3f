package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/auth"
	"github.com/vincehvac/servicepro-crm/internal/pkg/response"
	authservice "github.com/vincehvac/servicepro-crm/internal/service/auth"
	jobservice "github.com/vincehvac/servicepro-crm/internal/service/job"
)

// PortalHandler serves the customer-facing surface: registration, login
// and a read-only job list.
type PortalHandler struct {
	authService *authservice.Service
	jobService  *jobservice.Service
	logger      *zap.Logger
}

func NewPortalHandler(authService *authservice.Service, jobService *jobservice.Service, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{authService: authService, jobService: jobService, logger: logger}
}

// Register creates a customer account plus its customer record.
func (h *PortalHandler) Register(c *gin.Context) {
	var req auth.PortalRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.PortalRegister(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	response.Success(c, http.StatusCreated, "account created", result)
}

// Login signs a customer in. The credential path is shared with the
// internal login.
func (h *PortalHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid credentials", err)
		return
	}

	response.Success(c, http.StatusOK, "signed in", result)
}

// Jobs lists service requests for the portal. The collection is not
// scoped to the signed-in customer and returns every job in the system.
// See DESIGN.md before changing it.
func (h *PortalHandler) Jobs(c *gin.Context) {
	jobs, err := h.jobService.List(c.Request.Context(), nil)
	if err != nil {
		h.logger.Error("failed to load portal jobs", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to list jobs", err)
		return
	}

	response.Success(c, http.StatusOK, "jobs retrieved", jobs)
}
