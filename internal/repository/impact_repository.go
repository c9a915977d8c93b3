package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/ecoreports/internal/model"
)

type ImpactRepository struct {
	db *gorm.DB
}

func NewImpactRepository(db *gorm.DB) *ImpactRepository {
	return &ImpactRepository{db: db}
}

func (r *ImpactRepository) Create(ctx context.Context, metric *model.ImpactMetric) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO impact_metrics (id, user_id, waste_category_id, quantity, co2_saved, water_saved, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		metric.ID,
		metric.UserID,
		metric.WasteCategoryID,
		metric.Quantity,
		metric.CO2Saved,
		metric.WaterSaved,
		metric.Date,
	).Error
}

func (r *ImpactRepository) Summary(ctx context.Context, userID uuid.UUID, since time.Time) (*model.ImpactSummary, error) {
	var summary model.ImpactSummary
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(quantity), 0) AS total_items,
			COALESCE(SUM(co2_saved), 0) AS co2_saved,
			COALESCE(SUM(water_saved), 0) AS water_saved,
			COUNT(DISTINCT waste_category_id) AS categories_recycled
		FROM impact_metrics
		WHERE user_id = ?
			AND date >= ?
	`, userID, since).Scan(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
