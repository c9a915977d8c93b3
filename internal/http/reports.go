package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/ecoreports/internal/model"
	"github.com/nurpe/ecoreports/internal/service"
)

type createReportRequest struct {
	Latitude    *float64 `json:"latitude" form:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" form:"longitude" binding:"required"`
	Image       string   `json:"image" form:"image" binding:"required"`
	Description string   `json:"description" form:"description" binding:"required"`
	Severity    int      `json:"severity" form:"severity" binding:"required"`
	IsRecurring bool     `json:"is_recurring" form:"is_recurring"`
}

type changeStatusRequest struct {
	Status string `json:"status" form:"status"`
}

type addCommentRequest struct {
	Content string `json:"content" form:"content"`
}

// bindBody binds a JSON or form body; an empty body leaves req zeroed so the
// service can report the missing field.
func bindBody(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func reportQueryFrom(c *gin.Context) model.ReportQuery {
	return model.ParseReportQuery(c.Query("status"), c.Query("search"), c.Query("order_by"), c.Query("page"))
}

func (h *Handler) listReports(c *gin.Context) {
	page, err := h.reports.ListReports(c.Request.Context(), reportQueryFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportPageResponse(*page))
}

func (h *Handler) createReport(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req createReportRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.CreateReport(c.Request.Context(), service.CreateReportInput{
		Principal:   principal,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Image:       req.Image,
		Description: req.Description,
		Severity:    req.Severity,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      report.ID.String(),
		"message": "Report created successfully",
		"report":  toReportResponse(*report),
	})
}

func (h *Handler) nearbyReports(c *gin.Context) {
	lat, lng, radius, ok := parseOrigin(c)
	if !ok {
		return
	}

	nearby, err := h.reports.NearbyReports(c.Request.Context(), lat, lng, radius)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]reportResponse, 0, len(nearby))
	for _, item := range nearby {
		items = append(items, toNearbyResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"reports": items})
}

func (h *Handler) exportReports(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	file, err := h.reports.ExportReports(c.Request.Context(), principal, reportQueryFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, xlsxContentType, file)
}

func (h *Handler) getReport(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.reports.GetReport(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportDetailResponse(*detail))
}

func (h *Handler) reportPDF(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	file, err := h.reports.ReportPDF(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, pdfContentType, file)
}

func (h *Handler) statusHistory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.reports.StatusHistory(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]statusChangeResponse, 0, len(history))
	for _, change := range history {
		items = append(items, toStatusChangeResponse(change))
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

func (h *Handler) changeStatus(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := bindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.ChangeStatus(c.Request.Context(), service.ChangeStatusInput{
		ReportID:  id,
		Status:    req.Status,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      report.ID.String(),
		"status":  string(report.Status),
		"message": "Status updated successfully",
	})
}

func (h *Handler) addComment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req addCommentRequest
	if err := bindBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.reports.AddComment(c.Request.Context(), id, principal, req.Content)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(*comment, principal.DisplayName()))
}
