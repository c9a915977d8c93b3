package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		points := [][2]float64{{0, 0}, {-2.170998, -79.922359}, {89.9, 179.9}, {-90, -180}, {45.5, 12.25}}
		for _, p := range points {
			assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]))
		}
	})

	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		assert.InDelta(t, 111.19, Distance(0, 0, 0, 1), 0.5)
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][4]float64{
			{-2.170998, -79.922359, -0.180653, -78.467834},
			{41.3851, 2.1734, 40.4168, -3.7038},
			{-33.8688, 151.2093, 51.5074, -0.1278},
		}
		for _, p := range pairs {
			ab := Distance(p[0], p[1], p[2], p[3])
			ba := Distance(p[2], p[3], p[0], p[1])
			assert.InDelta(t, ab, ba, 1e-9)
		}
	})

	t.Run("known city pair", func(t *testing.T) {
		// Guayaquil to Quito, roughly 270 km.
		assert.InDelta(t, 270, Distance(-2.170998, -79.922359, -0.180653, -78.467834), 10)
	})

	t.Run("antipodal points", func(t *testing.T) {
		assert.InDelta(t, math.Pi*EarthRadiusKm, Distance(0, 0, 0, 180), 1e-6)
	})
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(90, 180))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.False(t, ValidCoordinates(90.0001, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
	assert.False(t, ValidCoordinates(0, math.Inf(1)))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 111.19, Round(111.19492664455873, 2))
	assert.Equal(t, 0.0, Round(0.004, 2))
	assert.Equal(t, 1.23, Round(1.225000001, 2))
	assert.Equal(t, -2.170998, Round(-2.1709984, 6))
}
