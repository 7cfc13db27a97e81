package route

import (
	"context"
	"fmt"
	"math"

	"smartcart/internal/store"
)

const (
	// circuityFactor inflates straight-line distance to approximate roads.
	circuityFactor = 1.3

	// averageSpeedMetersPerSecond approximates 30 mph.
	averageSpeedMetersPerSecond = 13.41
)

// HaversineRouter is an offline Router: a greedy nearest-neighbour round
// trip over great-circle distances. It never calls out and is deterministic;
// equal legs are broken by store name.
type HaversineRouter struct{}

func NewHaversineRouter() *HaversineRouter {
	return &HaversineRouter{}
}

func (HaversineRouter) Route(ctx context.Context, origin store.Location, stops []store.Store) (*Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouting, err)
	}
	for _, s := range stops {
		if err := s.Location.Validate(); err != nil {
			return nil, fmt.Errorf("%w: store %q: %v", ErrRouting, s.Name, err)
		}
	}

	remaining := append([]store.Store(nil), stops...)
	order := make([]store.Store, 0, len(stops))
	current := origin
	var meters float64

	for len(remaining) > 0 {
		best := -1
		bestDist := math.Inf(1)
		for i, s := range remaining {
			d := store.GreatCircleMeters(current, s.Location)
			// Tie-breaker keeps the order deterministic for equal legs.
			if d < bestDist || (d == bestDist && s.Name < remaining[best].Name) {
				best = i
				bestDist = d
			}
		}

		next := remaining[best]
		order = append(order, next)
		meters += bestDist
		current = next.Location
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	// Return leg.
	meters += store.GreatCircleMeters(current, origin)
	meters *= circuityFactor

	return &Trip{
		Order:           order,
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(meters / averageSpeedMetersPerSecond)),
	}, nil
}
