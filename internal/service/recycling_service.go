package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/ecoreports/internal/config"
	"github.com/nurpe/ecoreports/internal/geo"
	"github.com/nurpe/ecoreports/internal/model"
)

type RecyclingPointStore interface {
	ListActive(ctx context.Context) ([]model.RecyclingPoint, error)
}

type WasteCategoryStore interface {
	List(ctx context.Context) ([]model.WasteCategory, error)
}

type PointsCache interface {
	GetActive(ctx context.Context) ([]model.RecyclingPoint, bool, error)
	SetActive(ctx context.Context, points []model.RecyclingPoint) error
	Invalidate(ctx context.Context) error
}

type RecyclingService struct {
	points        RecyclingPointStore
	categories    WasteCategoryStore
	cache         PointsCache
	defaultRadius float64
	log           zerolog.Logger
	now           func() time.Time
}

// PointView is a recycling point as listed to clients: opening hours are
// reduced to those of the current weekday.
type PointView struct {
	Point        model.RecyclingPoint
	OpeningHours string
	DistanceKm   *float64
}

func NewRecyclingService(
	points RecyclingPointStore,
	categories WasteCategoryStore,
	cache PointsCache,
	cfg *config.Config,
	log zerolog.Logger,
) *RecyclingService {
	defaultRadius := 5.0
	if cfg != nil && cfg.Reports.NearbyDefaultRadiusKm > 0 {
		defaultRadius = cfg.Reports.NearbyDefaultRadiusKm
	}
	return &RecyclingService{
		points:        points,
		categories:    categories,
		cache:         cache,
		defaultRadius: defaultRadius,
		log:           log,
		now:           time.Now,
	}
}

func (s *RecyclingService) activePoints(ctx context.Context) ([]model.RecyclingPoint, error) {
	if s.cache != nil {
		points, ok, err := s.cache.GetActive(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("recycling points cache read failed")
		} else if ok {
			return points, nil
		}
	}

	points, err := s.points.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetActive(ctx, points); err != nil {
			s.log.Warn().Err(err).Msg("recycling points cache write failed")
		}
	}
	return points, nil
}

func (s *RecyclingService) ListActiveRecyclingPoints(ctx context.Context) ([]PointView, error) {
	points, err := s.activePoints(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]PointView, 0, len(points))
	for _, point := range points {
		if _, _, ok := point.Coordinates(); !ok || !point.IsActive {
			continue
		}
		views = append(views, PointView{Point: point, OpeningHours: point.HoursOn(now)})
	}
	return views, nil
}

func (s *RecyclingService) NearbyRecyclingPoints(ctx context.Context, lat, lon float64, radiusKm *float64) ([]PointView, error) {
	radius, err := resolveOrigin(lat, lon, radiusKm, s.defaultRadius)
	if err != nil {
		return nil, err
	}

	points, err := s.activePoints(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := geo.Within(ctx, lat, lon, radius, points)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]PointView, 0, len(matches))
	for _, match := range matches {
		if !match.Item.IsActive {
			continue
		}
		distance := match.DistanceKm
		views = append(views, PointView{
			Point:        match.Item,
			OpeningHours: match.Item.HoursOn(now),
			DistanceKm:   &distance,
		})
	}
	return views, nil
}

func (s *RecyclingService) ListWasteCategories(ctx context.Context) ([]model.WasteCategory, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.WasteCategory{}
	}
	return categories, nil
}
