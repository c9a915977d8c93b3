package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/ecoreports/internal/config"
	"github.com/nurpe/ecoreports/internal/geo"
	"github.com/nurpe/ecoreports/internal/model"
)

type ReportStore interface {
	CreateReport(ctx context.Context, report *model.TrashReport) error
	GetReport(ctx context.Context, id uuid.UUID) (*model.TrashReport, error)
	ListReports(ctx context.Context, filter model.ReportFilter, order model.ReportOrder, limit, offset int) ([]model.TrashReport, error)
	CountReports(ctx context.Context, filter model.ReportFilter) (int64, error)
	ListAllReports(ctx context.Context) ([]model.TrashReport, error)
	UpdateStatus(ctx context.Context, change model.ReportStatusChange, updatedAt time.Time) error
	ListStatusChanges(ctx context.Context, reportID uuid.UUID) ([]model.ReportStatusChange, error)
	CreateComment(ctx context.Context, comment *model.ReportComment) error
	ListComments(ctx context.Context, reportID uuid.UUID) ([]model.ReportComment, error)
}

type ExcelGenerator interface {
	Generate(export model.ReportExport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(sheet model.ReportSheet) ([]byte, error)
}

type ReportService struct {
	store         ReportStore
	excel         ExcelGenerator
	pdf           PDFGenerator
	policy        Policy
	pageSize      int
	defaultRadius float64
	now           func() time.Time
}

type CreateReportInput struct {
	Principal   model.Principal
	Latitude    float64 `validate:"gte=-90,lte=90"`
	Longitude   float64 `validate:"gte=-180,lte=180"`
	Image       string  `validate:"required,max=500"`
	Description string  `validate:"required"`
	Severity    int     `validate:"gte=1,lte=4"`
	IsRecurring bool
}

type ChangeStatusInput struct {
	ReportID  uuid.UUID
	Status    string
	Principal model.Principal
}

type FileResult struct {
	FileName string
	Content  []byte
}

func NewReportService(store ReportStore, excel ExcelGenerator, pdf PDFGenerator, policy Policy, cfg *config.Config) *ReportService {
	if policy == nil {
		policy = OwnerOrStaffPolicy{}
	}
	pageSize := model.ReportPageSize
	defaultRadius := 5.0
	if cfg != nil {
		if cfg.Reports.PageSize > 0 {
			pageSize = cfg.Reports.PageSize
		}
		if cfg.Reports.NearbyDefaultRadiusKm > 0 {
			defaultRadius = cfg.Reports.NearbyDefaultRadiusKm
		}
	}
	return &ReportService{
		store:         store,
		excel:         excel,
		pdf:           pdf,
		policy:        policy,
		pageSize:      pageSize,
		defaultRadius: defaultRadius,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReportService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *ReportService) ListReports(ctx context.Context, query model.ReportQuery) (*model.Page[model.TrashReport], error) {
	count, err := s.store.CountReports(ctx, query.ReportFilter)
	if err != nil {
		return nil, err
	}
	number, numPages, offset := model.Paginate(query.Page, count, s.pageSize)

	var items []model.TrashReport
	if count > 0 {
		items, err = s.store.ListReports(ctx, query.ReportFilter, query.OrderBy, s.pageSize, offset)
		if err != nil {
			return nil, err
		}
	}
	page := model.NewPage(items, number, numPages, count, s.pageSize)
	return &page, nil
}

func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*model.ReportDetail, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	comments, err := s.store.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.ReportComment{}
	}
	return &model.ReportDetail{Report: *report, Comments: comments}, nil
}

func (s *ReportService) CreateReport(ctx context.Context, input CreateReportInput) (*model.TrashReport, error) {
	if input.Principal.UserID == uuid.Nil {
		return nil, ErrPermissionDenied
	}
	input.Image = strings.TrimSpace(input.Image)
	input.Description = strings.TrimSpace(input.Description)
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if !geo.ValidCoordinates(input.Latitude, input.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	now := s.timestamp()
	report := &model.TrashReport{
		ID:          uuid.New(),
		UserID:      input.Principal.UserID,
		Latitude:    geo.Round(input.Latitude, 6),
		Longitude:   geo.Round(input.Longitude, 6),
		Image:       input.Image,
		Description: input.Description,
		Severity:    model.Severity(input.Severity),
		IsRecurring: input.IsRecurring,
		Status:      model.ReportStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// NearbyReports scans every report and keeps those within radiusKm of the
// origin, in store order. A nil radius means the configured default.
func (s *ReportService) NearbyReports(ctx context.Context, lat, lon float64, radiusKm *float64) ([]model.NearbyReport, error) {
	radius, err := resolveOrigin(lat, lon, radiusKm, s.defaultRadius)
	if err != nil {
		return nil, err
	}

	reports, err := s.store.ListAllReports(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := geo.Within(ctx, lat, lon, radius, reports)
	if err != nil {
		return nil, err
	}

	result := make([]model.NearbyReport, 0, len(matches))
	for _, match := range matches {
		result = append(result, model.NearbyReport{Report: match.Item, DistanceKm: match.DistanceKm})
	}
	return result, nil
}

// ChangeStatus moves a report to any of the known statuses. Transitions are
// not restricted.
func (s *ReportService) ChangeStatus(ctx context.Context, input ChangeStatusInput) (*model.TrashReport, error) {
	report, err := s.store.GetReport(ctx, input.ReportID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	status, ok := model.ParseReportStatus(input.Status)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, input.Status)
	}
	if !s.policy.CanModify(input.Principal, report.UserID) {
		return nil, ErrPermissionDenied
	}

	now := s.timestamp()
	change := model.ReportStatusChange{
		ID:        uuid.New(),
		ReportID:  report.ID,
		OldStatus: report.Status,
		NewStatus: status,
		ChangedBy: input.Principal.UserID,
		CreatedAt: now,
	}
	if err := s.store.UpdateStatus(ctx, change, now); err != nil {
		return nil, mapNotFound(err)
	}

	report.Status = status
	report.UpdatedAt = now
	return report, nil
}

func (s *ReportService) AddComment(ctx context.Context, reportID uuid.UUID, principal model.Principal, content string) (*model.ReportComment, error) {
	if _, err := s.store.GetReport(ctx, reportID); err != nil {
		return nil, mapNotFound(err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidInput)
	}

	comment := &model.ReportComment{
		ID:        uuid.New(),
		ReportID:  reportID,
		UserID:    principal.UserID,
		Content:   content,
		CreatedAt: s.timestamp(),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ReportService) StatusHistory(ctx context.Context, reportID uuid.UUID) ([]model.ReportStatusChange, error) {
	if _, err := s.store.GetReport(ctx, reportID); err != nil {
		return nil, mapNotFound(err)
	}
	history, err := s.store.ListStatusChanges(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []model.ReportStatusChange{}
	}
	return history, nil
}

// ExportReports builds a spreadsheet of every report matching the query.
func (s *ReportService) ExportReports(ctx context.Context, principal model.Principal, query model.ReportQuery) (*FileResult, error) {
	if !principal.IsStaffMember() {
		return nil, ErrPermissionDenied
	}

	count, err := s.store.CountReports(ctx, query.ReportFilter)
	if err != nil {
		return nil, err
	}
	var reports []model.TrashReport
	if count > 0 {
		reports, err = s.store.ListReports(ctx, query.ReportFilter, query.OrderBy, int(count), 0)
		if err != nil {
			return nil, err
		}
	}

	now := s.timestamp()
	content, err := s.excel.Generate(model.ReportExport{
		GeneratedAt: now,
		GeneratedBy: principal.DisplayName(),
		Filter:      query.ReportFilter,
		Reports:     reports,
	})
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: fmt.Sprintf("reports-%s.xlsx", now.Format("20060102-150405")),
		Content:  content,
	}, nil
}

func (s *ReportService) ReportPDF(ctx context.Context, principal model.Principal, reportID uuid.UUID) (*FileResult, error) {
	detail, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanModify(principal, detail.Report.UserID) {
		return nil, ErrPermissionDenied
	}
	history, err := s.store.ListStatusChanges(ctx, reportID)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(model.ReportSheet{
		Detail:      *detail,
		History:     history,
		GeneratedAt: s.timestamp(),
	})
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: fmt.Sprintf("report-%s.pdf", reportID.String()),
		Content:  content,
	}, nil
}
