package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const PointsPerLevel = 100

type UserProfile struct {
	UserID          uuid.UUID                   `json:"user_id"`
	Points          int                         `json:"points"`
	Level           int                         `json:"level"`
	TotalDetections int                         `json:"total_detections"`
	Badges          datatypes.JSONSlice[string] `json:"badges"`
	Preferences     datatypes.JSONMap           `json:"preferences"`
}

func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return 1 + points/PointsPerLevel
}

func (p UserProfile) HasBadge(name string) bool {
	for _, badge := range p.Badges {
		if badge == name {
			return true
		}
	}
	return false
}

type Badge struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Icon           string    `json:"icon"`
	PointsRequired int       `json:"points_required"`
	Category       string    `json:"category"`
}

type ImpactMetric struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	WasteCategoryID uuid.UUID `json:"waste_category_id"`
	Quantity        int       `json:"quantity"`
	CO2Saved        float64   `json:"co2_saved" gorm:"column:co2_saved"`
	WaterSaved      float64   `json:"water_saved"`
	Date            time.Time `json:"date"`
}

type ImpactSummary struct {
	TotalItems         int64   `json:"total_items"`
	CO2Saved           float64 `json:"co2_saved" gorm:"column:co2_saved"`
	WaterSaved         float64 `json:"water_saved"`
	CategoriesRecycled int64   `json:"categories_recycled"`
	Days               int     `json:"days"`
}
