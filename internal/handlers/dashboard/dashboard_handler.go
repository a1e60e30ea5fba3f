package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/pkg/response"
	service "github.com/vincehvac/servicepro-crm/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService *service.Service
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// Stats returns the four summary counters.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute dashboard stats", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to load dashboard stats", err)
		return
	}

	response.Success(c, http.StatusOK, "stats retrieved", stats)
}
