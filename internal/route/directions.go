package route

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartcart/internal/maps"
	"smartcart/internal/store"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DirectionsRouter routes with the Google Directions service, letting it
// optimize the waypoint order.
type DirectionsRouter struct {
	client  *maps.Client
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	log     *zap.Logger
}

func NewDirectionsRouter(client *maps.Client, log *zap.Logger) *DirectionsRouter {
	if log == nil {
		log = zap.NewNop()
	}

	// Open after 5 consecutive provider outages, try again after 30s.
	// Answers about a single request never count toward opening.
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "directions",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return !isOutage(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &DirectionsRouter{
		client:  client,
		breaker: breaker,
		timeout: 10 * time.Second,
		log:     log,
	}
}

func (d *DirectionsRouter) Route(ctx context.Context, origin store.Location, stops []store.Store) (*Trip, error) {
	if len(stops) == 0 {
		return &Trip{Order: []store.Store{}}, nil
	}
	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouting, err)
	}

	waypoints := make([]maps.LatLng, 0, len(stops))
	for _, s := range stops {
		waypoints = append(waypoints, maps.LatLng(s.Location))
	}

	call := func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		dir, err := d.client.OptimizedDirections(callCtx, maps.LatLng(origin), maps.LatLng(origin), waypoints)
		if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", errProviderTimeout, err)
		}
		return dir, err
	}

	res, err := d.breaker.Execute(call)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: directions circuit open: %v", ErrRouting, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRouting, err)
	}

	directions, _ := res.(*maps.Directions)
	if directions == nil {
		return nil, fmt.Errorf("%w: unexpected directions response", ErrRouting)
	}

	order, err := applyOrder(stops, directions.WaypointOrder)
	if err != nil {
		return nil, err
	}

	d.log.Debug("route computed",
		zap.Int("stops", len(stops)),
		zap.Ints("waypoint_order", directions.WaypointOrder),
		zap.Int("distance_meters", directions.DistanceMeters()),
	)

	return &Trip{
		Order:           order,
		DistanceMeters:  directions.DistanceMeters(),
		DurationSeconds: directions.DurationSeconds(),
	}, nil
}

var errProviderTimeout = errors.New("directions provider timed out")

// requestStatuses are provider answers about one request's waypoints rather
// than the provider's health.
var requestStatuses = map[string]bool{
	"NOT_FOUND":                 true,
	"INVALID_REQUEST":           true,
	"MAX_WAYPOINTS_EXCEEDED":    true,
	"MAX_ROUTE_LENGTH_EXCEEDED": true,
}

// isOutage reports whether err means the directions provider is unhealthy:
// transport errors, per-call timeouts, HTTP 5xx and quota or unknown statuses.
// Unroutable stops and caller cancellation are not outages.
func isOutage(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errProviderTimeout) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, maps.ErrZeroResults) {
		return false
	}
	var statusErr *maps.StatusError
	if errors.As(err, &statusErr) {
		return !requestStatuses[statusErr.Status]
	}
	return true
}

// applyOrder reorders stops by a waypoint permutation; an empty permutation
// keeps the input order.
func applyOrder(stops []store.Store, order []int) ([]store.Store, error) {
	if len(order) == 0 {
		return append([]store.Store(nil), stops...), nil
	}
	if len(order) != len(stops) {
		return nil, fmt.Errorf("%w: waypoint order has %d entries for %d stops", ErrRouting, len(order), len(stops))
	}

	out := make([]store.Store, 0, len(stops))
	seen := make([]bool, len(stops))
	for _, i := range order {
		if i < 0 || i >= len(stops) || seen[i] {
			return nil, fmt.Errorf("%w: invalid waypoint order %v", ErrRouting, order)
		}
		seen[i] = true
		out = append(out, stops[i])
	}
	return out, nil
}
