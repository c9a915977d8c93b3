package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const ClosedHours = "closed"

type WasteCategory struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	RecyclingInstructions string    `json:"recycling_instructions"`
	Icon                  *string   `json:"icon,omitempty"`
}

type RecyclingPoint struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
	IsActive     bool              `json:"is_active"`
	OpeningHours datatypes.JSONMap `json:"opening_hours"`
	ContactInfo  datatypes.JSONMap `json:"contact_info"`
	WasteTypes   []string          `json:"waste_types"`
}

// Coordinates satisfies geo.Locatable; points without both coordinates are
// reported as missing.
func (p RecyclingPoint) Coordinates() (float64, float64, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// HoursOn returns the opening hours for the weekday of t, or "closed" when the
// weekday has no entry.
func (p RecyclingPoint) HoursOn(t time.Time) string {
	key := strings.ToLower(t.Weekday().String())
	value, ok := p.OpeningHours[key]
	if !ok || value == nil {
		return ClosedHours
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ClosedHours
}
