package store

import (
	"errors"
	"math"
)

// ErrInvalidLocation is returned for a missing or out-of-range origin.
var ErrInvalidLocation = errors.New("invalid location")

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Validate rejects coordinates outside the valid lat/lng ranges.
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) ||
		l.Lat < -90 || l.Lat > 90 || l.Lng < -180 || l.Lng > 180 {
		return ErrInvalidLocation
	}
	return nil
}

// Store is a located store instance. Produced by a Locator and treated as
// read-only afterwards.
type Store struct {
	Name            string   `json:"name" yaml:"name"`
	Chain           string   `json:"chain" yaml:"chain"`
	Address         string   `json:"address" yaml:"address"`
	Location        Location `json:"location" yaml:"location"`
	PlaceID         string   `json:"place_id,omitempty" yaml:"place_id,omitempty"`
	Rating          float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	DistanceMeters  int      `json:"distance_meters,omitempty" yaml:"distance_meters,omitempty"`
	DurationSeconds int      `json:"travel_duration_seconds,omitempty" yaml:"travel_duration_seconds,omitempty"`
}

const earthRadiusMeters = 6371000.0

// GreatCircleMeters is the haversine distance between two points.
func GreatCircleMeters(a, b Location) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
