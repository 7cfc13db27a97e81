package store

import (
	"context"
	"math"
)

// averageSpeedMetersPerSecond approximates 30 mph urban driving.
const averageSpeedMetersPerSecond = 13.41

// StaticLocator serves a fixed store list, keeping the nearest store of each
// requested chain within the radius. Distances are great-circle estimates.
type StaticLocator struct {
	stores []Store
}

func NewStaticLocator(stores []Store) *StaticLocator {
	return &StaticLocator{stores: stores}
}

func (s *StaticLocator) Locate(
	ctx context.Context,
	origin Location,
	chains []string,
	radiusMiles float64,
) ([]Store, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found []Store
	for _, chain := range chains {
		var best *Store
		for _, candidate := range s.stores {
			if !MatchesChain(candidate, chain) {
				continue
			}

			meters := GreatCircleMeters(origin, candidate.Location)
			if radiusMiles > 0 && meters/MetersPerMile > radiusMiles {
				continue
			}

			c := candidate
			if c.Chain == "" {
				c.Chain = chain
			}
			c.DistanceMeters = int(math.Round(meters))
			c.DurationSeconds = int(math.Round(meters / averageSpeedMetersPerSecond))

			if best == nil || c.DurationSeconds < best.DurationSeconds ||
				(c.DurationSeconds == best.DurationSeconds && c.Name < best.Name) {
				best = &c
			}
		}
		if best != nil && !containsStore(found, best.Name) {
			found = append(found, *best)
		}
	}

	SortByDuration(found)
	return found, nil
}

func containsStore(stores []Store, name string) bool {
	for _, s := range stores {
		if s.Name == name {
			return true
		}
	}
	return false
}
