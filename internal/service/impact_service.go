package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/ecoreports/internal/model"
)

const impactSummaryDays = 30

type ImpactStore interface {
	Create(ctx context.Context, metric *model.ImpactMetric) error
	Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*model.ImpactSummary, error)
}

type CategoryLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*model.WasteCategory, error)
}

type ImpactService struct {
	store      ImpactStore
	categories CategoryLookup
	now        func() time.Time
}

type RecordImpactInput struct {
	Principal       model.Principal
	WasteCategoryID uuid.UUID `validate:"required"`
	Quantity        int       `validate:"gte=0"`
	CO2Saved        float64   `validate:"gte=0"`
	WaterSaved      float64   `validate:"gte=0"`
	Date            time.Time
}

func NewImpactService(store ImpactStore, categories CategoryLookup) *ImpactService {
	return &ImpactService{
		store:      store,
		categories: categories,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ImpactService) RecordImpact(ctx context.Context, input RecordImpactInput) (*model.ImpactMetric, error) {
	if input.Principal.UserID == uuid.Nil {
		return nil, ErrPermissionDenied
	}
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.categories.Get(ctx, input.WasteCategoryID); err != nil {
		if mapNotFound(err) == ErrNotFound {
			return nil, fmt.Errorf("%w: unknown waste category", ErrInvalidInput)
		}
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}
	metric := &model.ImpactMetric{
		ID:              uuid.New(),
		UserID:          input.Principal.UserID,
		WasteCategoryID: input.WasteCategoryID,
		Quantity:        input.Quantity,
		CO2Saved:        input.CO2Saved,
		WaterSaved:      input.WaterSaved,
		Date:            dateOnly(date),
	}
	if err := s.store.Create(ctx, metric); err != nil {
		return nil, err
	}
	return metric, nil
}

// Summary totals the caller's metrics over the last 30 days, today included.
func (s *ImpactService) Summary(ctx context.Context, userID uuid.UUID) (*model.ImpactSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	since := dateOnly(s.now()).AddDate(0, 0, -impactSummaryDays)
	summary, err := s.store.Summary(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	summary.Days = impactSummaryDays
	return summary, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
