package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/ecoreports/internal/model"
)

func newTestImpactService(store *MockImpactStore, categories *MockCategoryStore) *ImpactService {
	svc := NewImpactService(store, categories)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 18, 45, 0, 0, time.UTC) }
	return svc
}

func TestRecordImpact(t *testing.T) {
	store := &MockImpactStore{}
	categories := &MockCategoryStore{}
	svc := newTestImpactService(store, categories)
	categoryID := uuid.New()
	user := model.Principal{UserID: uuid.New()}

	categories.On("Get", mock.Anything, categoryID).Return(&model.WasteCategory{ID: categoryID, Name: "Glass"}, nil)
	store.On("Create", mock.Anything, mock.AnythingOfType("*model.ImpactMetric")).Return(nil)

	metric, err := svc.RecordImpact(context.Background(), RecordImpactInput{
		Principal:       user,
		WasteCategoryID: categoryID,
		Quantity:        4,
		CO2Saved:        1.2,
		WaterSaved:      8,
	})
	require.NoError(t, err)
	assert.Equal(t, user.UserID, metric.UserID)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), metric.Date)
}

func TestRecordImpact_Invalid(t *testing.T) {
	store := &MockImpactStore{}
	categories := &MockCategoryStore{}
	svc := newTestImpactService(store, categories)
	user := model.Principal{UserID: uuid.New()}

	_, err := svc.RecordImpact(context.Background(), RecordImpactInput{Principal: user, WasteCategoryID: uuid.New(), Quantity: -1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.RecordImpact(context.Background(), RecordImpactInput{Principal: user, Quantity: 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	unknown := uuid.New()
	categories.On("Get", mock.Anything, unknown).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.RecordImpact(context.Background(), RecordImpactInput{Principal: user, WasteCategoryID: unknown, Quantity: 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImpactSummary_LastThirtyDays(t *testing.T) {
	store := &MockImpactStore{}
	svc := newTestImpactService(store, &MockCategoryStore{})
	userID := uuid.New()
	since := time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC)

	store.On("Summary", mock.Anything, userID, since).Return(&model.ImpactSummary{TotalItems: 7, CategoriesRecycled: 2}, nil)

	summary, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.TotalItems)
	assert.Equal(t, 30, summary.Days)
	store.AssertExpectations(t)
}
