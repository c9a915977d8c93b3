package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nurpe/ecoreports/internal/model"
)

type RecyclingPointRepository struct {
	db *gorm.DB
}

func NewRecyclingPointRepository(db *gorm.DB) *RecyclingPointRepository {
	return &RecyclingPointRepository{db: db}
}

type recyclingPointRow struct {
	ID           uuid.UUID
	Name         string
	Address      string
	Latitude     *float64
	Longitude    *float64
	IsActive     bool
	OpeningHours datatypes.JSONMap
	ContactInfo  datatypes.JSONMap
}

type pointCategoryRow struct {
	RecyclingPointID uuid.UUID
	Name             string
}

// ListActive returns active points that have both coordinates, with the names
// of their accepted waste categories.
func (r *RecyclingPointRepository) ListActive(ctx context.Context) ([]model.RecyclingPoint, error) {
	var rows []recyclingPointRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, address, latitude, longitude, is_active, opening_hours, contact_info
		FROM recycling_points
		WHERE is_active = TRUE
			AND latitude IS NOT NULL
			AND longitude IS NOT NULL
		ORDER BY name ASC, id ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.RecyclingPoint{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var categories []pointCategoryRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT rpc.recycling_point_id, wc.name
		FROM recycling_point_categories rpc
		JOIN waste_categories wc ON wc.id = rpc.waste_category_id
		WHERE rpc.recycling_point_id IN ?
		ORDER BY wc.name ASC
	`, ids).Scan(&categories).Error; err != nil {
		return nil, err
	}

	byPoint := make(map[uuid.UUID][]string, len(rows))
	for _, category := range categories {
		byPoint[category.RecyclingPointID] = append(byPoint[category.RecyclingPointID], category.Name)
	}

	points := make([]model.RecyclingPoint, 0, len(rows))
	for _, row := range rows {
		wasteTypes := byPoint[row.ID]
		if wasteTypes == nil {
			wasteTypes = []string{}
		}
		points = append(points, model.RecyclingPoint{
			ID:           row.ID,
			Name:         row.Name,
			Address:      row.Address,
			Latitude:     row.Latitude,
			Longitude:    row.Longitude,
			IsActive:     row.IsActive,
			OpeningHours: row.OpeningHours,
			ContactInfo:  row.ContactInfo,
			WasteTypes:   wasteTypes,
		})
	}
	return points, nil
}

// GetOrCreate looks a point up by its exact coordinates and creates it, with
// its accepted categories, when it does not exist yet. Both steps share one
// transaction.
func (r *RecyclingPointRepository) GetOrCreate(
	ctx context.Context,
	point *model.RecyclingPoint,
	categoryIDs []uuid.UUID,
) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing uuid.UUID
		if err := tx.Raw(`
			SELECT id
			FROM recycling_points
			WHERE latitude = ? AND longitude = ?
			LIMIT 1
		`, point.Latitude, point.Longitude).Scan(&existing).Error; err != nil {
			return err
		}
		if existing != uuid.Nil {
			point.ID = existing
			return nil
		}

		if point.ID == uuid.Nil {
			point.ID = uuid.New()
		}
		openingHours := point.OpeningHours
		if openingHours == nil {
			openingHours = datatypes.JSONMap{}
		}
		contactInfo := point.ContactInfo
		if contactInfo == nil {
			contactInfo = datatypes.JSONMap{}
		}
		if err := tx.Exec(`
			INSERT INTO recycling_points (id, name, address, latitude, longitude, is_active, opening_hours, contact_info)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, point.ID, point.Name, point.Address, point.Latitude, point.Longitude, point.IsActive, openingHours, contactInfo).Error; err != nil {
			return err
		}

		for _, categoryID := range categoryIDs {
			if err := tx.Exec(`
				INSERT INTO recycling_point_categories (recycling_point_id, waste_category_id)
				VALUES (?, ?)
				ON CONFLICT DO NOTHING
			`, point.ID, categoryID).Error; err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	return created, err
}
