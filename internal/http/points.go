package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listRecyclingPoints(c *gin.Context) {
	points, err := h.recycling.ListActiveRecyclingPoints(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list recycling points failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while retrieving recycling points"})
		return
	}

	items := make([]recyclingPointResponse, 0, len(points))
	for _, point := range points {
		items = append(items, toRecyclingPointResponse(point))
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) nearbyRecyclingPoints(c *gin.Context) {
	lat, lng, radius, ok := parseOrigin(c)
	if !ok {
		return
	}

	points, err := h.recycling.NearbyRecyclingPoints(c.Request.Context(), lat, lng, radius)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]recyclingPointResponse, 0, len(points))
	for _, point := range points {
		items = append(items, toRecyclingPointResponse(point))
	}
	c.JSON(http.StatusOK, gin.H{"points": items})
}

func (h *Handler) listWasteCategories(c *gin.Context) {
	categories, err := h.recycling.ListWasteCategories(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
