package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(0))
}

func TestGeocode_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "Ann Arbor, MI", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Ann Arbor, MI, USA","geometry":{"location":{"lat":42.28,"lng":-83.74}}}]}`))
	})

	res, err := c.Geocode(context.Background(), "Ann Arbor, MI")
	require.NoError(t, err)
	assert.Equal(t, "Ann Arbor, MI, USA", res.FormattedAddress)
	assert.Equal(t, LatLng{Lat: 42.28, Lng: -83.74}, res.Location)
}

func TestGeocode_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   error
	}{
		{"zero results", "ZERO_RESULTS", ErrZeroResults},
		{"denied", "REQUEST_DENIED", ErrRequestDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"` + tt.status + `","results":[]}`))
			})

			_, err := c.Geocode(context.Background(), "nowhere")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGet_UnknownStatusIsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OVER_QUERY_LIMIT","error_message":"slow down"}`))
	})

	_, err := c.Geocode(context.Background(), "x")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "OVER_QUERY_LIMIT", se.Status)
}

func TestGet_MissingKey(t *testing.T) {
	c := NewClient("")

	_, err := c.Geocode(context.Background(), "x")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestTextSearch_DefaultsRating(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/place/textsearch/json", r.URL.Path)
		assert.Equal(t, "42.28,-83.74", r.URL.Query().Get("location"))
		w.Write([]byte(`{"status":"OK","results":[
			{"place_id":"a","name":"Walmart Supercenter","formatted_address":"1 Main","geometry":{"location":{"lat":1,"lng":2}},"rating":4.4},
			{"place_id":"b","name":"Walmart Neighborhood Market","geometry":{"location":{"lat":3,"lng":4}}}
		]}`))
	})

	places, err := c.TextSearch(context.Background(), "Walmart near here", LatLng{Lat: 42.28, Lng: -83.74}, 24140)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, 4.4, places[0].Rating)
	assert.Equal(t, 4.0, places[1].Rating)
}

func TestTextSearch_ZeroResultsIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	places, err := c.TextSearch(context.Background(), "q", LatLng{}, 100)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestDrivingDistance_ElementStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"NOT_FOUND"}]}]}`))
	})

	_, err := c.DrivingDistance(context.Background(), LatLng{}, LatLng{Lat: 1})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "NOT_FOUND", se.Status)
}

func TestOptimizedDirections_SumsLegs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "optimize:true|1,1|2,2", r.URL.Query().Get("waypoints"))
		assert.Equal(t, r.URL.Query().Get("origin"), r.URL.Query().Get("destination"))
		w.Write([]byte(`{"status":"OK","routes":[{"waypoint_order":[1,0],"legs":[
			{"distance":{"value":1000},"duration":{"value":60}},
			{"distance":{"value":2000},"duration":{"value":120}},
			{"distance":{"value":500},"duration":{"value":30}}
		]}]}`))
	})

	d, err := c.OptimizedDirections(context.Background(), LatLng{}, LatLng{}, []LatLng{{1, 1}, {2, 2}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, d.WaypointOrder)
	assert.Equal(t, 3500, d.DistanceMeters())
	assert.Equal(t, 210, d.DurationSeconds())
}

func TestGet_HTTPErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.OptimizedDirections(context.Background(), LatLng{}, LatLng{}, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Status, "502")
}
