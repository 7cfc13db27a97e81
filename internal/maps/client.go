package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

var (
	ErrMissingAPIKey = errors.New("maps api key is required")
	ErrZeroResults   = errors.New("maps api returned no results")
	ErrRequestDenied = errors.New("maps api request denied")
)

// StatusError is a non-OK status reported in a maps response body.
type StatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("maps %s: %s (%s)", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("maps %s: %s", e.Endpoint, e.Status)
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l LatLng) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// Client talks to the Google Maps web services over plain HTTPS.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit paces outgoing requests; rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	params.Set("key", c.apiKey)
	u := c.baseURL + "/" + endpoint + "/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("maps %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("maps %s: read body: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpoint, Status: resp.Status, Message: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("maps %s: decode: %w", endpoint, err)
	}
	return nil
}

// checkStatus maps the body-level status field to an error.
func checkStatus(endpoint, status, message string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS":
		return fmt.Errorf("maps %s: %w", endpoint, ErrZeroResults)
	case "REQUEST_DENIED":
		return fmt.Errorf("maps %s: %w: %s", endpoint, ErrRequestDenied, message)
	default:
		return &StatusError{Endpoint: endpoint, Status: status, Message: message}
	}
}
