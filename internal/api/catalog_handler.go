package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/catalog-ingest-api/internal/models"
	"github.com/catalog-ingest-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CatalogHandler handles the public catalog endpoints
type CatalogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(services *service.Services, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		services: services,
		log:      log.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /v1/catalog
// Optional query params: path (slash-separated category prefix), limit, offset
func (h *CatalogHandler) List(c *gin.Context) {
	filter := models.CatalogFilter{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	if p := c.Query("path"); p != "" {
		filter.PathPrefix = strings.Split(strings.Trim(p, "/"), "/")
	}

	items, err := h.services.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Catalog list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// Get handles GET /v1/catalog/:id and counts the view
func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.services.Catalog.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Catalog get failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Click handles POST /v1/catalog/:id/click, counting the click and returning
// the affiliate URL the client should follow.
func (h *CatalogHandler) Click(c *gin.Context) {
	url, err := h.services.Catalog.Click(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Click failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Categories handles GET /v1/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	nodes, err := h.services.Catalog.Categories(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Categories list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": nodes})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
