package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles the moderation endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// ListProducts handles GET /admin/products?status=
func (h *AdminHandler) ListProducts(c *gin.Context) {
	filter := models.CatalogFilter{
		Status: models.Status(c.Query("status")),
		Limit:  intQuery(c, "limit", 100),
		Offset: intQuery(c, "offset", 0),
	}
	if filter.Status != "" && !models.ValidStatuses[filter.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	items, err := h.services.Catalog.ListForAdmin(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Admin list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// SetStatus handles PATCH /admin/products/:id/status
func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	err := h.services.Moderation.SetStatus(c.Request.Context(), c.Param("id"), models.Status(req.Status))
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
	}
}

// ApproveBulk handles POST /admin/products/approve-bulk
func (h *AdminHandler) ApproveBulk(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids is required"})
		return
	}

	n, err := h.services.Moderation.ApproveBulk(c.Request.Context(), req.IDs)
	if err != nil {
		h.log.Error().Err(err).Msg("Bulk approve failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": n})
}

// LockCategory handles POST /admin/products/:id/category, pinning the item
// to an operator-chosen category path. An empty path unlocks.
func (h *AdminHandler) LockCategory(c *gin.Context) {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	var path []string
	if p := strings.Trim(req.Path, "/"); p != "" {
		path = strings.Split(p, "/")
	}

	err := h.services.Moderation.LockCategory(c.Request.Context(), c.Param("id"), path)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, service.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category path"})
	case err != nil:
		h.log.Error().Err(err).Msg("Category lock failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "path": path})
	}
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	err := h.services.Moderation.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case err != nil:
		h.log.Error().Err(err).Msg("Delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// TriggerRun handles POST /admin/run: starts a pipeline cycle in the
// background. 202 when started, 409 when one is already running.
func (h *AdminHandler) TriggerRun(c *gin.Context) {
	if h.services.Ingest.Running() {
		c.JSON(http.StatusConflict, gin.H{"error": "run already in progress"})
		return
	}

	// detached from the request context so the run outlives the response
	go func() {
		if _, err := h.services.Ingest.Run(context.Background()); err != nil &&
			!errors.Is(err, service.ErrRunInProgress) {
			h.log.Error().Err(err).Msg("Triggered run failed")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// ListRuns handles GET /admin/runs
func (h *AdminHandler) ListRuns(c *gin.Context) {
	runs, err := h.services.Ingest.RecentRuns(c.Request.Context(), intQuery(c, "limit", 20))
	if err != nil {
		h.log.Error().Err(err).Msg("Run list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
