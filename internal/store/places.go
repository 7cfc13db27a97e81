package store

import (
	"context"
	"fmt"
	"strings"

	"smartcart/internal/maps"

	"go.uber.org/zap"
)

// maxChainsPerRequest bounds the number of Places searches per request.
const maxChainsPerRequest = 5

// secondaryKeywords mark co-located services that are not the grocery store itself.
var secondaryKeywords = []string{
	"tire center", "vision center", "optical", "pharmacy",
	"gas station", "auto center", "distribution", "office",
}

// PlacesLocator finds the nearest store of each chain with the Google
// Places and Distance Matrix services.
type PlacesLocator struct {
	client *maps.Client
	log    *zap.Logger
}

func NewPlacesLocator(client *maps.Client, log *zap.Logger) *PlacesLocator {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlacesLocator{client: client, log: log}
}

func (p *PlacesLocator) Locate(
	ctx context.Context,
	origin Location,
	chains []string,
	radiusMiles float64,
) ([]Store, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if len(chains) > maxChainsPerRequest {
		chains = chains[:maxChainsPerRequest]
	}

	var found []Store
	for _, chain := range chains {
		best, err := p.nearestForChain(ctx, origin, chain, radiusMiles)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.log.Warn("chain search failed", zap.String("chain", chain), zap.Error(err))
			continue
		}
		if best == nil {
			p.log.Info("no store within radius",
				zap.String("chain", chain),
				zap.Float64("radius_miles", radiusMiles),
			)
			continue
		}
		p.log.Info("nearest store for chain",
			zap.String("chain", chain),
			zap.String("store", best.Name),
			zap.Int("duration_seconds", best.DurationSeconds),
		)
		found = append(found, *best)
	}

	SortByDuration(found)
	return found, nil
}

// nearestForChain returns the shortest-duration main store for one chain, or
// nil when none is within the radius.
func (p *PlacesLocator) nearestForChain(
	ctx context.Context,
	origin Location,
	chain string,
	radiusMiles float64,
) (*Store, error) {
	query := fmt.Sprintf("%s near %s", chain, maps.LatLng(origin).String())

	places, err := p.client.TextSearch(ctx, query, maps.LatLng(origin), radiusMiles*MetersPerMile)
	if err != nil {
		return nil, err
	}

	var best *Store
	for _, place := range places {
		if !isMainStore(place.Name, chain) {
			continue
		}

		el, err := p.client.DrivingDistance(ctx, maps.LatLng(origin), place.Location)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.log.Warn("distance lookup failed", zap.String("place", place.Name), zap.Error(err))
			continue
		}
		if float64(el.DistanceMeters)/MetersPerMile > radiusMiles {
			continue
		}

		candidate := Store{
			Name:            place.Name,
			Chain:           chain,
			Address:         place.FormattedAddress,
			Location:        Location(place.Location),
			PlaceID:         place.PlaceID,
			Rating:          place.Rating,
			DistanceMeters:  el.DistanceMeters,
			DurationSeconds: el.DurationSeconds,
		}
		if best == nil || candidate.DurationSeconds < best.DurationSeconds {
			best = &candidate
		}
	}
	return best, nil
}

func isMainStore(placeName, chain string) bool {
	name := strings.ToLower(placeName)
	if !strings.Contains(name, strings.ToLower(chain)) {
		return false
	}
	for _, kw := range secondaryKeywords {
		if strings.Contains(name, kw) {
			return false
		}
	}
	return true
}
