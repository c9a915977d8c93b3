package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/ecoreports/internal/config"
	"github.com/nurpe/ecoreports/internal/model"
	"github.com/nurpe/ecoreports/internal/osm"
)

type OSMSource interface {
	Geocode(ctx context.Context, area string) (float64, float64, error)
	RecyclingElements(ctx context.Context, lat, lon, radiusKm float64) ([]osm.Element, error)
}

type CategoryEnsurer interface {
	Ensure(ctx context.Context, category model.WasteCategory) (*model.WasteCategory, error)
}

type PointWriter interface {
	GetOrCreate(ctx context.Context, point *model.RecyclingPoint, categoryIDs []uuid.UUID) (bool, error)
}

var defaultCategories = []model.WasteCategory{
	{Name: "Plastic", Description: "Plastic containers and packaging", RecyclingInstructions: "Clean and dry before recycling"},
	{Name: "Glass", Description: "Glass bottles and containers", RecyclingInstructions: "Remove caps and rinse"},
	{Name: "Paper", Description: "Paper and cardboard", RecyclingInstructions: "Flatten boxes and remove tape"},
	{Name: "Metal", Description: "Metal containers and scrap", RecyclingInstructions: "Clean and separate by type"},
	{Name: "Electronics", Description: "Electronic waste and devices", RecyclingInstructions: "Remove batteries and personal data"},
}

// materialKeywords maps a lowercase category name to the words that mark it
// in OSM tag keys or values.
var materialKeywords = []struct {
	category string
	keywords []string
}{
	{"plastic", []string{"plastic"}},
	{"glass", []string{"glass", "bottles"}},
	{"paper", []string{"paper", "newspaper", "cardboard"}},
	{"metal", []string{"metal", "scrap_metal", "cans"}},
	{"electronics", []string{"electronics", "e-waste", "batteries"}},
}

type ImportService struct {
	source     OSMSource
	categories CategoryEnsurer
	points     PointWriter
	cache      PointsCache
	itemDelay  time.Duration
	log        zerolog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

type ImportResult struct {
	Area      string
	Latitude  float64
	Longitude float64
	Found     int
	Created   int
	Existing  int
	Skipped   int
	Failed    int
}

func NewImportService(
	source OSMSource,
	categories CategoryEnsurer,
	points PointWriter,
	cache PointsCache,
	cfg *config.Config,
	log zerolog.Logger,
) *ImportService {
	return &ImportService{
		source:     source,
		categories: categories,
		points:     points,
		cache:      cache,
		itemDelay:  cfg.OSM.ItemDelay,
		log:        log,
		sleep:      sleepContext,
	}
}

// Import geocodes area, fetches recycling amenities around it and stores
// every tagged node that is not already known by its coordinates.
func (s *ImportService) Import(ctx context.Context, area string, radiusKm float64) (*ImportResult, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return nil, fmt.Errorf("%w: area is required", ErrInvalidInput)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", ErrInvalidInput)
	}

	lat, lon, err := s.source.Geocode(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("%w: could not find coordinates for %s: %v", ErrUpstream, area, err)
	}
	result := &ImportResult{Area: area, Latitude: lat, Longitude: lon}

	elements, err := s.source.RecyclingElements(ctx, lat, lon, radiusKm)
	if err != nil {
		s.log.Error().Err(err).Str("area", area).Msg("fetching recycling points failed")
		elements = nil
	}
	result.Found = len(elements)

	categories, err := s.ensureCategories(ctx)
	if err != nil {
		return nil, err
	}

	for _, element := range elements {
		if element.Type != "node" || len(element.Tags) == 0 {
			result.Skipped++
			continue
		}

		created, err := s.saveElement(ctx, element, categories)
		if err != nil {
			result.Failed++
			s.log.Error().
				Err(fmt.Errorf("%w: %v", ErrUpstream, err)).
				Int64("osm_id", element.ID).
				Msg("saving recycling point failed")
			continue
		}
		if created {
			result.Created++
		} else {
			result.Existing++
		}

		if err := s.sleep(ctx, s.itemDelay); err != nil {
			return result, err
		}
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("recycling points cache invalidation failed")
		}
	}
	s.log.Info().
		Str("area", area).
		Int("found", result.Found).
		Int("created", result.Created).
		Int("failed", result.Failed).
		Msg("recycling points import finished")
	return result, nil
}

func (s *ImportService) ensureCategories(ctx context.Context) (map[string]uuid.UUID, error) {
	categories := make(map[string]uuid.UUID, len(defaultCategories))
	for _, category := range defaultCategories {
		stored, err := s.categories.Ensure(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("ensure category %s: %w", category.Name, err)
		}
		categories[strings.ToLower(stored.Name)] = stored.ID
	}
	return categories, nil
}

func (s *ImportService) saveElement(ctx context.Context, element osm.Element, categories map[string]uuid.UUID) (bool, error) {
	name := element.Tags["name"]
	if name == "" {
		name = fmt.Sprintf("Recycling Point %d", element.ID)
	}
	address := element.Tags["addr:full"]
	if address == "" {
		address = element.Tags["addr:street"]
	}

	lat, lon := element.Lat, element.Lon
	point := &model.RecyclingPoint{
		Name:      name,
		Address:   address,
		Latitude:  &lat,
		Longitude: &lon,
		IsActive:  true,
	}
	return s.points.GetOrCreate(ctx, point, MatchCategories(element.Tags, categories))
}

// MatchCategories returns the ids of the categories whose keywords appear in
// any tag key or value, in keyword table order.
func MatchCategories(tags map[string]string, categories map[string]uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, material := range materialKeywords {
		id, ok := categories[material.category]
		if !ok {
			continue
		}
		if tagsMention(tags, material.keywords) {
			ids = append(ids, id)
		}
	}
	return ids
}

func tagsMention(tags map[string]string, keywords []string) bool {
	for key, value := range tags {
		key, value = strings.ToLower(key), strings.ToLower(value)
		for _, keyword := range keywords {
			if strings.Contains(key, keyword) || strings.Contains(value, keyword) {
				return true
			}
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
