package route

import (
	"context"
	"errors"

	"smartcart/internal/store"
)

// ErrRouting marks a trip that could not be routed. Every Router failure
// wraps it.
var ErrRouting = errors.New("routing failed")

// Trip is a round trip from the origin through every stop and back.
type Trip struct {
	Order           []store.Store `json:"order"`
	DistanceMeters  int           `json:"distance_meters"`
	DurationSeconds int           `json:"duration_seconds"`
}

// Router orders stops and measures the round trip.
type Router interface {
	Route(ctx context.Context, origin store.Location, stops []store.Store) (*Trip, error)
}
