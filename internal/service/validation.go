package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/nurpe/ecoreports/internal/geo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError flattens validator output into a single ErrInvalidInput.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(parts, ", "))
}

// resolveOrigin checks a proximity query and returns the radius to use.
func resolveOrigin(lat, lon float64, radiusKm *float64, defaultRadius float64) (float64, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return 0, fmt.Errorf("%w: latitude must be within [-90, 90] and longitude within [-180, 180]", ErrInvalidInput)
	}
	if radiusKm == nil {
		return defaultRadius, nil
	}
	radius := *radiusKm
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return 0, fmt.Errorf("%w: radius must be a non-negative number", ErrInvalidInput)
	}
	return radius, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
