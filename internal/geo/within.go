package geo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const scanChunkSize = 512

type Locatable interface {
	Coordinates() (lat, lon float64, ok bool)
}

type Match[T any] struct {
	Item       T
	DistanceKm float64
}

// Within returns the items whose distance from (lat, lon) is <= radiusKm,
// in input order, each with its distance attached. Items without coordinates
// are skipped. Inputs larger than one chunk are scanned concurrently; the scan
// only reads item coordinates.
func Within[T Locatable](ctx context.Context, lat, lon, radiusKm float64, items []T) ([]Match[T], error) {
	if len(items) <= scanChunkSize {
		return scanChunk(lat, lon, radiusKm, items), nil
	}

	chunks := (len(items) + scanChunkSize - 1) / scanChunkSize
	results := make([][]Match[T], chunks)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < chunks; i++ {
		start := i * scanChunkSize
		end := min(start+scanChunkSize, len(items))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = scanChunk(lat, lon, radiusKm, items[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range results {
		total += len(part)
	}
	matches := make([]Match[T], 0, total)
	for _, part := range results {
		matches = append(matches, part...)
	}
	return matches, nil
}

func scanChunk[T Locatable](lat, lon, radiusKm float64, items []T) []Match[T] {
	var matches []Match[T]
	for _, item := range items {
		itemLat, itemLon, ok := item.Coordinates()
		if !ok {
			continue
		}
		distance := Distance(lat, lon, itemLat, itemLon)
		if distance <= radiusKm {
			matches = append(matches, Match[T]{Item: item, DistanceKm: distance})
		}
	}
	return matches
}
