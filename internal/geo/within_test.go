package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	id       int
	lat, lon float64
	missing  bool
}

func (p point) Coordinates() (float64, float64, bool) {
	return p.lat, p.lon, !p.missing
}

func TestWithin(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps only points inside the radius", func(t *testing.T) {
		items := []point{
			{id: 1, lat: 0, lon: 0},
			{id: 2, lat: 0, lon: 0.01},
			{id: 3, lat: 0, lon: 1},
			{id: 4, lat: 10, lon: 10},
		}

		matches, err := Within(ctx, 0, 0, 5, items)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, 1, matches[0].Item.id)
		assert.Equal(t, 0.0, matches[0].DistanceKm)
		assert.Equal(t, 2, matches[1].Item.id)
		assert.InDelta(t, 1.11, matches[1].DistanceKm, 0.01)
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		target := point{id: 7, lat: 0.02, lon: -0.03}
		radius := Distance(0, 0, target.lat, target.lon)

		matches, err := Within(ctx, 0, 0, radius, []point{target})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, radius, matches[0].DistanceKm)
	})

	t.Run("skips items without coordinates", func(t *testing.T) {
		matches, err := Within(ctx, 0, 0, 100, []point{{id: 1, missing: true}, {id: 2}})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, 2, matches[0].Item.id)
	})

	t.Run("parallel scan preserves order and agrees with sequential scan", func(t *testing.T) {
		items := make([]point, 0, 5*scanChunkSize+17)
		for i := 0; i < cap(items); i++ {
			items = append(items, point{id: i, lat: float64(i%180) * 0.01, lon: float64(i%90) * 0.02})
		}

		matches, err := Within(ctx, 0.5, 0.5, 60, items)
		require.NoError(t, err)

		expected := scanChunk(0.5, 0.5, 60, items)
		require.Equal(t, len(expected), len(matches))
		for i := range expected {
			assert.Equal(t, expected[i].Item.id, matches[i].Item.id)
		}
		assert.NotEmpty(t, matches)
		assert.Less(t, len(matches), len(items))
	})

	t.Run("cancelled context aborts a parallel scan", func(t *testing.T) {
		items := make([]point, 3*scanChunkSize)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Within(cancelled, 0, 0, 1, items)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty input", func(t *testing.T) {
		matches, err := Within[point](ctx, 0, 0, 1, nil)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
