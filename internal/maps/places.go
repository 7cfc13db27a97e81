package maps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GeocodeResult is the first match for a free-form address.
type GeocodeResult struct {
	Location         LatLng
	FormattedAddress string
}

type geometry struct {
	Location LatLng `json:"location"`
}

// Geocode resolves an address into coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	var body struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			FormattedAddress string   `json:"formatted_address"`
			Geometry         geometry `json:"geometry"`
		} `json:"results"`
	}

	if err := c.get(ctx, "geocode", url.Values{"address": {address}}, &body); err != nil {
		return nil, err
	}
	if err := checkStatus("geocode", body.Status, body.ErrorMessage); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("maps geocode: %w", ErrZeroResults)
	}

	first := body.Results[0]
	return &GeocodeResult{
		Location:         first.Geometry.Location,
		FormattedAddress: first.FormattedAddress,
	}, nil
}

// Place is one text-search hit.
type Place struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Location         LatLng
	Rating           float64
}

// TextSearch runs a Places text search biased to a circle around origin.
func (c *Client) TextSearch(ctx context.Context, query string, origin LatLng, radiusMeters float64) ([]Place, error) {
	var body struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			PlaceID          string   `json:"place_id"`
			Name             string   `json:"name"`
			FormattedAddress string   `json:"formatted_address"`
			Geometry         geometry `json:"geometry"`
			Rating           *float64 `json:"rating"`
		} `json:"results"`
	}

	params := url.Values{
		"query":    {query},
		"location": {origin.String()},
		"radius":   {strconv.FormatFloat(radiusMeters, 'f', 0, 64)},
	}
	if err := c.get(ctx, "place/textsearch", params, &body); err != nil {
		return nil, err
	}
	if body.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if err := checkStatus("place/textsearch", body.Status, body.ErrorMessage); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(body.Results))
	for _, r := range body.Results {
		rating := 4.0
		if r.Rating != nil {
			rating = *r.Rating
		}
		places = append(places, Place{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			FormattedAddress: r.FormattedAddress,
			Location:         r.Geometry.Location,
			Rating:           rating,
		})
	}
	return places, nil
}
