package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nurpe/ecoreports/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileRow struct {
	UserID          uuid.UUID
	Points          int
	Level           int
	TotalDetections int
	Badges          datatypes.JSONSlice[string]
	Preferences     datatypes.JSONMap
}

func (row profileRow) toModel() model.UserProfile {
	badges := row.Badges
	if badges == nil {
		badges = datatypes.JSONSlice[string]{}
	}
	preferences := row.Preferences
	if preferences == nil {
		preferences = datatypes.JSONMap{}
	}
	return model.UserProfile{
		UserID:          row.UserID,
		Points:          row.Points,
		Level:           row.Level,
		TotalDetections: row.TotalDetections,
		Badges:          badges,
		Preferences:     preferences,
	}
}

func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var profile *model.UserProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := loadProfile(tx, userID, false)
		if err != nil {
			return err
		}
		profile = loaded
		return nil
	})
	return profile, err
}

// Update locks the caller's profile row (creating it if needed), hands it to
// mutate together with the badge catalogue, and stores the result in the same
// transaction.
func (r *ProfileRepository) Update(
	ctx context.Context,
	userID uuid.UUID,
	mutate func(profile *model.UserProfile, badges []model.Badge) error,
) (*model.UserProfile, error) {
	var profile *model.UserProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := loadProfile(tx, userID, true)
		if err != nil {
			return err
		}

		var badges []model.Badge
		if err := tx.Raw(`
			SELECT id, name, description, icon, points_required, category
			FROM badges
			ORDER BY points_required ASC, name ASC
		`).Scan(&badges).Error; err != nil {
			return err
		}

		if err := mutate(loaded, badges); err != nil {
			return err
		}

		if err := tx.Exec(`
			UPDATE user_profiles
			SET points = ?, level = ?, total_detections = ?, badges = ?, preferences = ?
			WHERE user_id = ?
		`,
			loaded.Points,
			loaded.Level,
			loaded.TotalDetections,
			loaded.Badges,
			loaded.Preferences,
			userID,
		).Error; err != nil {
			return err
		}
		profile = loaded
		return nil
	})
	return profile, err
}

func loadProfile(tx *gorm.DB, userID uuid.UUID, forUpdate bool) (*model.UserProfile, error) {
	if err := tx.Exec(`
		INSERT INTO user_profiles (user_id)
		VALUES (?)
		ON CONFLICT (user_id) DO NOTHING
	`, userID).Error; err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, points, level, total_detections, badges, preferences
		FROM user_profiles
		WHERE user_id = ?
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var row profileRow
	if err := tx.Raw(query, userID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.UserID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	profile := row.toModel()
	return &profile, nil
}
