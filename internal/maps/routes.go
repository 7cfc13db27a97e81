package maps

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type valueField struct {
	Value int `json:"value"`
}

// Element is one origin->destination cell of a distance matrix.
type Element struct {
	DistanceMeters  int
	DurationSeconds int
}

// DrivingDistance returns the driving distance and duration between two points.
func (c *Client) DrivingDistance(ctx context.Context, origin, destination LatLng) (*Element, error) {
	var body struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Rows         []struct {
			Elements []struct {
				Status   string     `json:"status"`
				Distance valueField `json:"distance"`
				Duration valueField `json:"duration"`
			} `json:"elements"`
		} `json:"rows"`
	}

	params := url.Values{
		"origins":      {origin.String()},
		"destinations": {destination.String()},
		"mode":         {"driving"},
	}
	if err := c.get(ctx, "distancematrix", params, &body); err != nil {
		return nil, err
	}
	if err := checkStatus("distancematrix", body.Status, body.ErrorMessage); err != nil {
		return nil, err
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("maps distancematrix: %w", ErrZeroResults)
	}

	el := body.Rows[0].Elements[0]
	if err := checkStatus("distancematrix", el.Status, ""); err != nil {
		return nil, err
	}
	return &Element{
		DistanceMeters:  el.Distance.Value,
		DurationSeconds: el.Duration.Value,
	}, nil
}

// Directions is a routed round trip.
type Directions struct {
	WaypointOrder []int
	Legs          []Element
}

// DistanceMeters sums all legs.
func (d *Directions) DistanceMeters() int {
	total := 0
	for _, leg := range d.Legs {
		total += leg.DistanceMeters
	}
	return total
}

// DurationSeconds sums all legs.
func (d *Directions) DurationSeconds() int {
	total := 0
	for _, leg := range d.Legs {
		total += leg.DurationSeconds
	}
	return total
}

// OptimizedDirections routes origin -> waypoints -> destination and lets the
// provider reorder the waypoints.
func (c *Client) OptimizedDirections(ctx context.Context, origin, destination LatLng, waypoints []LatLng) (*Directions, error) {
	var body struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Routes       []struct {
			WaypointOrder []int `json:"waypoint_order"`
			Legs          []struct {
				Distance valueField `json:"distance"`
				Duration valueField `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
	}

	points := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		points = append(points, w.String())
	}

	params := url.Values{
		"origin":      {origin.String()},
		"destination": {destination.String()},
		"waypoints":   {"optimize:true|" + strings.Join(points, "|")},
		"mode":        {"driving"},
	}
	if err := c.get(ctx, "directions", params, &body); err != nil {
		return nil, err
	}
	if err := checkStatus("directions", body.Status, body.ErrorMessage); err != nil {
		return nil, err
	}
	if len(body.Routes) == 0 {
		return nil, fmt.Errorf("maps directions: %w", ErrZeroResults)
	}

	route := body.Routes[0]
	d := &Directions{WaypointOrder: route.WaypointOrder}
	for _, leg := range route.Legs {
		d.Legs = append(d.Legs, Element{
			DistanceMeters:  leg.Distance.Value,
			DurationSeconds: leg.Duration.Value,
		})
	}
	return d, nil
}
