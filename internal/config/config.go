package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"smartcart/internal/travel"
)

// Config is read once at startup from the environment.
type Config struct {
	Env     string
	Port    string
	Verbose bool

	DatabaseURL      string
	JWTSecret        string
	GoogleMapsAPIKey string
	MapsRPS          float64

	RedisAddr     string
	RouteCacheTTL time.Duration

	R2Endpoint  string
	R2AccessKey string
	R2SecretKey string
	R2Bucket    string

	ReferencePricesFile string

	Rates              travel.Rates
	SearchRadiusMiles  float64
	RoutingConcurrency int

	CORSOrigins []string
}

// Load reads the environment, applying defaults for optional settings.
// Malformed values are errors; missing required values are reported by
// Validate.
func Load() (*Config, error) {
	r := reader{}
	rates := travel.DefaultRates()

	cfg := &Config{
		Env:     r.str("APP_ENV", "development"),
		Port:    r.str("PORT", "8080"),
		Verbose: r.boolean("VERBOSE", false),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		MapsRPS:          r.float("MAPS_RPS", 10),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RouteCacheTTL: r.duration("ROUTE_CACHE_TTL", 24*time.Hour),

		R2Endpoint:  os.Getenv("R2_ENDPOINT"),
		R2AccessKey: os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey: os.Getenv("R2_SECRET_KEY"),
		R2Bucket:    os.Getenv("R2_BUCKET_NAME"),

		ReferencePricesFile: os.Getenv("REFERENCE_PRICES_FILE"),

		Rates: travel.Rates{
			MilesPerGallon:     r.float("AVG_MPG", rates.MilesPerGallon),
			GasPricePerGallon:  r.float("GAS_PRICE_PER_GALLON", rates.GasPricePerGallon),
			ValueOfTimePerHour: r.float("VALUE_OF_TIME_PER_HOUR", rates.ValueOfTimePerHour),
		},
		SearchRadiusMiles:  r.float("SEARCH_RADIUS_MILES", 15),
		RoutingConcurrency: r.integer("ROUTING_CONCURRENCY", 4),

		CORSOrigins: r.list("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	for _, req := range []struct{ key, val string }{
		{"DATABASE_URL", c.DatabaseURL},
		{"JWT_SECRET", c.JWTSecret},
		{"GOOGLE_MAPS_API_KEY", c.GoogleMapsAPIKey},
	} {
		if req.val == "" {
			errs = append(errs, fmt.Errorf("missing env var: %s", req.key))
		}
	}
	if c.R2Enabled() && (c.R2AccessKey == "" || c.R2SecretKey == "" || c.R2Bucket == "") {
		errs = append(errs, errors.New("R2_ENDPOINT set without R2_ACCESS_KEY, R2_SECRET_KEY and R2_BUCKET_NAME"))
	}
	if c.SearchRadiusMiles <= 0 {
		errs = append(errs, errors.New("SEARCH_RADIUS_MILES must be positive"))
	}
	if c.RoutingConcurrency <= 0 {
		errs = append(errs, errors.New("ROUTING_CONCURRENCY must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) R2Enabled() bool { return c.R2Endpoint != "" }

func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

type reader struct {
	errs []error
}

func (r *reader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *reader) float(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (r *reader) integer(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (r *reader) list(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
