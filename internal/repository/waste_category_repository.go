package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/ecoreports/internal/model"
)

type WasteCategoryRepository struct {
	db *gorm.DB
}

func NewWasteCategoryRepository(db *gorm.DB) *WasteCategoryRepository {
	return &WasteCategoryRepository{db: db}
}

func (r *WasteCategoryRepository) List(ctx context.Context) ([]model.WasteCategory, error) {
	var rows []model.WasteCategory
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, description, recycling_instructions, icon
		FROM waste_categories
		ORDER BY name ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *WasteCategoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.WasteCategory, error) {
	var category model.WasteCategory
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, description, recycling_instructions, icon
		FROM waste_categories
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&category).Error; err != nil {
		return nil, err
	}
	if category.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &category, nil
}

// Ensure returns the category with the given name, creating it with the
// provided description and instructions when missing.
func (r *WasteCategoryRepository) Ensure(ctx context.Context, category model.WasteCategory) (*model.WasteCategory, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	db := r.db.WithContext(ctx)
	if err := db.Exec(`
		INSERT INTO waste_categories (id, name, description, recycling_instructions, icon)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING
	`, category.ID, category.Name, category.Description, category.RecyclingInstructions, category.Icon).Error; err != nil {
		return nil, err
	}

	var stored model.WasteCategory
	if err := db.Raw(`
		SELECT id, name, description, recycling_instructions, icon
		FROM waste_categories
		WHERE name = ?
		LIMIT 1
	`, category.Name).Scan(&stored).Error; err != nil {
		return nil, err
	}
	if stored.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &stored, nil
}
