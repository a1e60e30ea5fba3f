// Package crud implements the resource screen template once: list with
// optional filters, create, partial update and delete. Customers,
// technicians and jobs each mount an instance instead of repeating the
// same handler set three times.
package crud

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/listing"
	"github.com/vincehvac/servicepro-crm/internal/pkg/response"
)

// Service is the per-resource backing a Handler dispatches to. E is the
// entity, C the create request, U the update request.
type Service[E, C, U any] interface {
	List(ctx context.Context, opts *listing.Options) ([]E, error)
	Create(ctx context.Context, req *C) (*E, error)
	Update(ctx context.Context, id string, req *U) (*E, error)
	Delete(ctx context.Context, id string) error
}

// Config parameterizes one resource surface.
type Config struct {
	// Resource is the singular noun used in messages and logs.
	Resource string
	// Filters are the query parameters passed through as exact-match
	// field filters.
	Filters []string
	// Searchable enables the free-text ?search= parameter.
	Searchable bool
}

type Handler[E, C, U any] struct {
	svc    Service[E, C, U]
	cfg    Config
	logger *zap.Logger
}

func New[E, C, U any](svc Service[E, C, U], cfg Config, logger *zap.Logger) *Handler[E, C, U] {
	return &Handler[E, C, U]{svc: svc, cfg: cfg, logger: logger}
}

// Register mounts the four template routes on a router group.
func (h *Handler[E, C, U]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler[E, C, U]) List(c *gin.Context) {
	opts := &listing.Options{Filters: map[string]string{}}
	for _, f := range h.cfg.Filters {
		if v := c.Query(f); v != "" {
			opts.Filters[f] = v
		}
	}
	if h.cfg.Searchable {
		opts.Search = c.Query("search")
	}

	items, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		h.logger.Error("failed to load collection",
			zap.String("resource", h.cfg.Resource),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "failed to list "+h.cfg.Resource+"s", err)
		return
	}

	response.Success(c, http.StatusOK, h.cfg.Resource+"s retrieved", items)
}

func (h *Handler[E, C, U]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, h.statusFor(err), "failed to create "+h.cfg.Resource, err)
		return
	}

	response.Success(c, http.StatusCreated, h.cfg.Resource+" created", item)
}

func (h *Handler[E, C, U]) Update(c *gin.Context) {
	id := c.Param("id")

	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, h.statusFor(err), "failed to update "+h.cfg.Resource, err)
		return
	}

	response.Success(c, http.StatusOK, h.cfg.Resource+" updated", item)
}

func (h *Handler[E, C, U]) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.statusFor(err), "failed to delete "+h.cfg.Resource, err)
		return
	}

	response.Success(c, http.StatusOK, h.cfg.Resource+" deleted", nil)
}

func (h *Handler[E, C, U]) statusFor(err error) int {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
