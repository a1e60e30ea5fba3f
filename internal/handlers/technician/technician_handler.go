package technician

import (
	"net/http"

	"github.com/gin-gonic/gin"

	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/response"
	service "github.com/vincehvac/servicepro-crm/internal/service/technician"
)

// TechnicianHandler carries the routes the generic template does not
// cover; the CRUD surface itself is mounted through handlers/crud.
type TechnicianHandler struct {
	technicianService *service.Service
}

func NewTechnicianHandler(technicianService *service.Service) *TechnicianHandler {
	return &TechnicianHandler{technicianService: technicianService}
}

// ToggleStatus flips a technician between Available and Busy.
func (h *TechnicianHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")

	t, err := h.technicianService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "technician not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to toggle status", err)
		return
	}

	response.Success(c, http.StatusOK, "technician status updated", t)
}
