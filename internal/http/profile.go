package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/ecoreports/internal/service"
)

type adjustPointsRequest struct {
	Delta *int `json:"delta" form:"delta" binding:"required"`
}

type recordImpactRequest struct {
	WasteCategoryID string  `json:"waste_category_id" form:"waste_category_id" binding:"required"`
	Quantity        int     `json:"quantity" form:"quantity"`
	CO2Saved        float64 `json:"co2_saved" form:"co2_saved"`
	WaterSaved      float64 `json:"water_saved" form:"water_saved"`
	Date            string  `json:"date" form:"date"`
}

func (h *Handler) getProfile(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) adjustPoints(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	var req adjustPointsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.AdjustPoints(c.Request.Context(), principal, userID, *req.Delta)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) impactSummary(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	summary, err := h.impact.Summary(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) recordImpact(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req recordImpactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryID, err := uuid.Parse(strings.TrimSpace(req.WasteCategoryID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid waste_category_id"})
		return
	}

	var date time.Time
	if strings.TrimSpace(req.Date) != "" {
		date, err = time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
	}

	metric, err := h.impact.RecordImpact(c.Request.Context(), service.RecordImpactInput{
		Principal:       principal,
		WasteCategoryID: categoryID,
		Quantity:        req.Quantity,
		CO2Saved:        req.CO2Saved,
		WaterSaved:      req.WaterSaved,
		Date:            date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, metric)
}
