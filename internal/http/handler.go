package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/ecoreports/internal/http/middleware"
	"github.com/nurpe/ecoreports/internal/model"
	"github.com/nurpe/ecoreports/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type ReportService interface {
	ListReports(ctx context.Context, query model.ReportQuery) (*model.Page[model.TrashReport], error)
	GetReport(ctx context.Context, id uuid.UUID) (*model.ReportDetail, error)
	CreateReport(ctx context.Context, input service.CreateReportInput) (*model.TrashReport, error)
	NearbyReports(ctx context.Context, lat, lon float64, radiusKm *float64) ([]model.NearbyReport, error)
	ChangeStatus(ctx context.Context, input service.ChangeStatusInput) (*model.TrashReport, error)
	AddComment(ctx context.Context, reportID uuid.UUID, principal model.Principal, content string) (*model.ReportComment, error)
	StatusHistory(ctx context.Context, reportID uuid.UUID) ([]model.ReportStatusChange, error)
	ExportReports(ctx context.Context, principal model.Principal, query model.ReportQuery) (*service.FileResult, error)
	ReportPDF(ctx context.Context, principal model.Principal, reportID uuid.UUID) (*service.FileResult, error)
}

type RecyclingService interface {
	ListActiveRecyclingPoints(ctx context.Context) ([]service.PointView, error)
	NearbyRecyclingPoints(ctx context.Context, lat, lon float64, radiusKm *float64) ([]service.PointView, error)
	ListWasteCategories(ctx context.Context) ([]model.WasteCategory, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	AdjustPoints(ctx context.Context, actor model.Principal, userID uuid.UUID, delta int) (*model.UserProfile, error)
}

type ImpactService interface {
	RecordImpact(ctx context.Context, input service.RecordImpactInput) (*model.ImpactMetric, error)
	Summary(ctx context.Context, userID uuid.UUID) (*model.ImpactSummary, error)
}

type Handler struct {
	reports   ReportService
	recycling RecyclingService
	profiles  ProfileService
	impact    ImpactService
	log       zerolog.Logger
}

func NewHandler(
	reports ReportService,
	recycling RecyclingService,
	profiles ProfileService,
	impact ImpactService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		reports:   reports,
		recycling: recycling,
		profiles:  profiles,
		impact:    impact,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)

	api := router.Group("/api")
	api.Use(authMiddleware)

	api.GET("/reports", h.listReports)
	api.POST("/reports", h.createReport)
	api.GET("/reports/nearby", h.nearbyReports)
	api.GET("/reports/export", h.exportReports)
	api.GET("/reports/:id", h.getReport)
	api.GET("/reports/:id/pdf", h.reportPDF)
	api.GET("/reports/:id/history", h.statusHistory)
	api.POST("/reports/:id/status", h.changeStatus)
	api.POST("/reports/:id/comments", h.addComment)

	api.GET("/recycling-points", h.listRecyclingPoints)
	api.GET("/recycling-points/nearby", h.nearbyRecyclingPoints)
	api.GET("/waste-categories", h.listWasteCategories)

	api.GET("/profile", h.getProfile)
	api.POST("/profiles/:user_id/points", h.adjustPoints)
	api.GET("/impact", h.impactSummary)
	api.POST("/impact", h.recordImpact)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func sendFile(c *gin.Context, contentType string, file *service.FileResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+file.FileName+"\"")
	c.Data(http.StatusOK, contentType, file.Content)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNotFound.Error()})
		return uuid.Nil, false
	}
	return id, true
}

// parseOrigin reads the lat, lng and optional radius query parameters.
func parseOrigin(c *gin.Context) (float64, float64, *float64, bool) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lat")), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lng")), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location parameters"})
		return 0, 0, nil, false
	}

	raw, present := c.GetQuery("radius")
	if !present {
		return lat, lng, nil, true
	}
	radius, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location parameters"})
		return 0, 0, nil, false
	}
	return lat, lng, &radius, true
}
