package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nurpe/ecoreports/internal/model"
	"github.com/nurpe/ecoreports/internal/osm"
)

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) CreateReport(ctx context.Context, report *model.TrashReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockReportStore) GetReport(ctx context.Context, id uuid.UUID) (*model.TrashReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrashReport), args.Error(1)
}

func (m *MockReportStore) ListReports(ctx context.Context, filter model.ReportFilter, order model.ReportOrder, limit, offset int) ([]model.TrashReport, error) {
	args := m.Called(ctx, filter, order, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrashReport), args.Error(1)
}

func (m *MockReportStore) CountReports(ctx context.Context, filter model.ReportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportStore) ListAllReports(ctx context.Context) ([]model.TrashReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrashReport), args.Error(1)
}

func (m *MockReportStore) UpdateStatus(ctx context.Context, change model.ReportStatusChange, updatedAt time.Time) error {
	return m.Called(ctx, change, updatedAt).Error(0)
}

func (m *MockReportStore) ListStatusChanges(ctx context.Context, reportID uuid.UUID) ([]model.ReportStatusChange, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportStatusChange), args.Error(1)
}

func (m *MockReportStore) CreateComment(ctx context.Context, comment *model.ReportComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockReportStore) ListComments(ctx context.Context, reportID uuid.UUID) ([]model.ReportComment, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportComment), args.Error(1)
}

type MockExcelGenerator struct {
	mock.Mock
}

func (m *MockExcelGenerator) Generate(export model.ReportExport) ([]byte, error) {
	args := m.Called(export)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockPDFGenerator struct {
	mock.Mock
}

func (m *MockPDFGenerator) Generate(sheet model.ReportSheet) ([]byte, error) {
	args := m.Called(sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockPointStore struct {
	mock.Mock
}

func (m *MockPointStore) ListActive(ctx context.Context) ([]model.RecyclingPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecyclingPoint), args.Error(1)
}

func (m *MockPointStore) GetOrCreate(ctx context.Context, point *model.RecyclingPoint, categoryIDs []uuid.UUID) (bool, error) {
	args := m.Called(ctx, point, categoryIDs)
	return args.Bool(0), args.Error(1)
}

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) List(ctx context.Context) ([]model.WasteCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteCategory), args.Error(1)
}

func (m *MockCategoryStore) Get(ctx context.Context, id uuid.UUID) (*model.WasteCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteCategory), args.Error(1)
}

func (m *MockCategoryStore) Ensure(ctx context.Context, category model.WasteCategory) (*model.WasteCategory, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteCategory), args.Error(1)
}

type MockPointsCache struct {
	mock.Mock
}

func (m *MockPointsCache) GetActive(ctx context.Context) ([]model.RecyclingPoint, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.RecyclingPoint), args.Bool(1), args.Error(2)
}

func (m *MockPointsCache) SetActive(ctx context.Context, points []model.RecyclingPoint) error {
	return m.Called(ctx, points).Error(0)
}

func (m *MockPointsCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockProfileStore struct {
	mock.Mock
	profile *model.UserProfile
	badges  []model.Badge
}

func (m *MockProfileStore) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

// Update runs mutate against the stored profile the way the real store does
// inside its transaction.
func (m *MockProfileStore) Update(ctx context.Context, userID uuid.UUID, mutate func(*model.UserProfile, []model.Badge) error) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	if err := mutate(m.profile, m.badges); err != nil {
		return nil, err
	}
	return m.profile, nil
}

type MockImpactStore struct {
	mock.Mock
}

func (m *MockImpactStore) Create(ctx context.Context, metric *model.ImpactMetric) error {
	return m.Called(ctx, metric).Error(0)
}

func (m *MockImpactStore) Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*model.ImpactSummary, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImpactSummary), args.Error(1)
}

type MockOSMSource struct {
	mock.Mock
}

func (m *MockOSMSource) Geocode(ctx context.Context, area string) (float64, float64, error) {
	args := m.Called(ctx, area)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *MockOSMSource) RecyclingElements(ctx context.Context, lat, lon, radiusKm float64) ([]osm.Element, error) {
	args := m.Called(ctx, lat, lon, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]osm.Element), args.Error(1)
}
