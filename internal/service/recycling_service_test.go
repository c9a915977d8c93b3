package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/nurpe/ecoreports/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func newTestRecyclingService(points *MockPointStore, categories *MockCategoryStore, cache PointsCache) *RecyclingService {
	svc := NewRecyclingService(points, categories, cache, nil, zerolog.Nop())
	// 2026-10-19 is a Monday.
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestListActiveRecyclingPoints_CacheMissFillsCache(t *testing.T) {
	points := &MockPointStore{}
	cache := &MockPointsCache{}
	svc := newTestRecyclingService(points, &MockCategoryStore{}, cache)

	stored := []model.RecyclingPoint{
		{
			ID: uuid.New(), Name: "Open Monday", IsActive: true,
			Latitude: floatPtr(1), Longitude: floatPtr(1),
			OpeningHours: datatypes.JSONMap{"monday": "08:00-20:00"},
			WasteTypes:   []string{"Glass"},
		},
		{
			ID: uuid.New(), Name: "Weekends", IsActive: true,
			Latitude: floatPtr(2), Longitude: floatPtr(2),
			OpeningHours: datatypes.JSONMap{"saturday": "10:00-14:00"},
		},
	}
	cache.On("GetActive", mock.Anything).Return(nil, false, nil)
	points.On("ListActive", mock.Anything).Return(stored, nil)
	cache.On("SetActive", mock.Anything, stored).Return(nil)

	views, err := svc.ListActiveRecyclingPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "08:00-20:00", views[0].OpeningHours)
	assert.Equal(t, model.ClosedHours, views[1].OpeningHours)
	assert.Nil(t, views[0].DistanceKm)
	cache.AssertExpectations(t)
}

func TestListActiveRecyclingPoints_CacheHitSkipsStore(t *testing.T) {
	points := &MockPointStore{}
	cache := &MockPointsCache{}
	svc := newTestRecyclingService(points, &MockCategoryStore{}, cache)

	cached := []model.RecyclingPoint{{ID: uuid.New(), IsActive: true, Latitude: floatPtr(1), Longitude: floatPtr(1)}}
	cache.On("GetActive", mock.Anything).Return(cached, true, nil)

	views, err := svc.ListActiveRecyclingPoints(context.Background())
	require.NoError(t, err)
	assert.Len(t, views, 1)
	points.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestListActiveRecyclingPoints_CacheErrorFallsBack(t *testing.T) {
	points := &MockPointStore{}
	cache := &MockPointsCache{}
	svc := newTestRecyclingService(points, &MockCategoryStore{}, cache)

	cache.On("GetActive", mock.Anything).Return(nil, false, errors.New("connection refused"))
	points.On("ListActive", mock.Anything).Return([]model.RecyclingPoint{}, nil)
	cache.On("SetActive", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	views, err := svc.ListActiveRecyclingPoints(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestNearbyRecyclingPoints(t *testing.T) {
	points := &MockPointStore{}
	svc := newTestRecyclingService(points, &MockCategoryStore{}, nil)

	near := model.RecyclingPoint{ID: uuid.New(), IsActive: true, Latitude: floatPtr(0), Longitude: floatPtr(0.02)}
	noCoords := model.RecyclingPoint{ID: uuid.New(), IsActive: true}
	far := model.RecyclingPoint{ID: uuid.New(), IsActive: true, Latitude: floatPtr(0), Longitude: floatPtr(3)}
	points.On("ListActive", mock.Anything).Return([]model.RecyclingPoint{near, noCoords, far}, nil)

	views, err := svc.NearbyRecyclingPoints(context.Background(), 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, near.ID, views[0].Point.ID)
	require.NotNil(t, views[0].DistanceKm)
	assert.InDelta(t, 2.22, *views[0].DistanceKm, 0.01)

	_, err = svc.NearbyRecyclingPoints(context.Background(), 0, 181, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestListWasteCategories(t *testing.T) {
	categories := &MockCategoryStore{}
	svc := newTestRecyclingService(&MockPointStore{}, categories, nil)
	categories.On("List", mock.Anything).Return(nil, nil)

	result, err := svc.ListWasteCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
