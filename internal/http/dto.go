package http

import (
	"time"

	"github.com/nurpe/ecoreports/internal/geo"
	"github.com/nurpe/ecoreports/internal/model"
	"github.com/nurpe/ecoreports/internal/service"
)

type reportResponse struct {
	ID              string    `json:"id"`
	User            string    `json:"user"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Image           string    `json:"image"`
	Description     string    `json:"description"`
	Severity        int       `json:"severity"`
	SeverityDisplay string    `json:"severity_display"`
	IsRecurring     bool      `json:"is_recurring"`
	Status          string    `json:"status"`
	StatusDisplay   string    `json:"status_display"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Distance        *float64  `json:"distance,omitempty"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      string    `json:"user"`
}

type reportDetailResponse struct {
	reportResponse
	Comments []commentResponse `json:"comments"`
}

type reportPageResponse struct {
	Items       []reportResponse `json:"items"`
	Page        int              `json:"page"`
	NumPages    int              `json:"num_pages"`
	Count       int64            `json:"count"`
	PageSize    int              `json:"page_size"`
	HasNext     bool             `json:"has_next"`
	HasPrevious bool             `json:"has_previous"`
}

type statusChangeResponse struct {
	ID        string    `json:"id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

type recyclingPointResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Latitude     float64                `json:"latitude"`
	Longitude    float64                `json:"longitude"`
	Address      string                 `json:"address"`
	WasteTypes   []string               `json:"waste_types"`
	ContactInfo  map[string]interface{} `json:"contact_info"`
	OpeningHours string                 `json:"opening_hours"`
	Distance     *float64               `json:"distance,omitempty"`
}

func toReportResponse(report model.TrashReport) reportResponse {
	return reportResponse{
		ID:              report.ID.String(),
		User:            report.UserID.String(),
		Latitude:        report.Latitude,
		Longitude:       report.Longitude,
		Image:           report.Image,
		Description:     report.Description,
		Severity:        int(report.Severity),
		SeverityDisplay: report.Severity.Display(),
		IsRecurring:     report.IsRecurring,
		Status:          string(report.Status),
		StatusDisplay:   report.Status.Display(),
		CreatedAt:       report.CreatedAt,
		UpdatedAt:       report.UpdatedAt,
	}
}

func toNearbyResponse(nearby model.NearbyReport) reportResponse {
	resp := toReportResponse(nearby.Report)
	distance := geo.Round(nearby.DistanceKm, 2)
	resp.Distance = &distance
	return resp
}

func toCommentResponse(comment model.ReportComment, user string) commentResponse {
	if user == "" {
		user = comment.UserID.String()
	}
	return commentResponse{
		ID:        comment.ID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		User:      user,
	}
}

func toReportDetailResponse(detail model.ReportDetail) reportDetailResponse {
	comments := make([]commentResponse, 0, len(detail.Comments))
	for _, comment := range detail.Comments {
		comments = append(comments, toCommentResponse(comment, ""))
	}
	return reportDetailResponse{
		reportResponse: toReportResponse(detail.Report),
		Comments:       comments,
	}
}

func toReportPageResponse(page model.Page[model.TrashReport]) reportPageResponse {
	items := make([]reportResponse, 0, len(page.Items))
	for _, report := range page.Items {
		items = append(items, toReportResponse(report))
	}
	return reportPageResponse{
		Items:       items,
		Page:        page.Number,
		NumPages:    page.NumPages,
		Count:       page.Count,
		PageSize:    page.PageSize,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}
}

func toStatusChangeResponse(change model.ReportStatusChange) statusChangeResponse {
	return statusChangeResponse{
		ID:        change.ID.String(),
		OldStatus: string(change.OldStatus),
		NewStatus: string(change.NewStatus),
		ChangedBy: change.ChangedBy.String(),
		CreatedAt: change.CreatedAt,
	}
}

func toRecyclingPointResponse(view service.PointView) recyclingPointResponse {
	lat, lon, _ := view.Point.Coordinates()
	wasteTypes := view.Point.WasteTypes
	if wasteTypes == nil {
		wasteTypes = []string{}
	}
	contactInfo := map[string]interface{}(view.Point.ContactInfo)
	if contactInfo == nil {
		contactInfo = map[string]interface{}{}
	}
	resp := recyclingPointResponse{
		ID:           view.Point.ID.String(),
		Name:         view.Point.Name,
		Latitude:     lat,
		Longitude:    lon,
		Address:      view.Point.Address,
		WasteTypes:   wasteTypes,
		ContactInfo:  contactInfo,
		OpeningHours: view.OpeningHours,
	}
	if view.DistanceKm != nil {
		distance := geo.Round(*view.DistanceKm, 2)
		resp.Distance = &distance
	}
	return resp
}
