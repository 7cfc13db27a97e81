package route

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"smartcart/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "smartcart:route:"

// CachedRouter serves repeated (origin, stop set) requests from redis.
// Redis failures fall through to the wrapped Router.
type CachedRouter struct {
	next  Router
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedRouter(next Router, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedRouter {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedRouter{next: next, redis: client, ttl: ttl, log: log}
}

func (c *CachedRouter) Route(ctx context.Context, origin store.Location, stops []store.Store) (*Trip, error) {
	if c.redis == nil || len(stops) == 0 {
		return c.next.Route(ctx, origin, stops)
	}

	key := cacheKey(origin, stops)

	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var trip Trip
		if jerr := json.Unmarshal(raw, &trip); jerr == nil {
			return &trip, nil
		}
	case !errors.Is(err, redis.Nil):
		c.log.Warn("route cache read failed", zap.Error(err))
	}

	trip, err := c.next.Route(ctx, origin, stops)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(trip); jerr == nil {
		if serr := c.redis.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.log.Warn("route cache write failed", zap.Error(serr))
		}
	}
	return trip, nil
}

// cacheKey identifies the stop set independently of input order.
func cacheKey(origin store.Location, stops []store.Store) string {
	ids := make([]string, 0, len(stops))
	for _, s := range stops {
		id := s.PlaceID
		if id == "" {
			id = s.Name
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	b, _ := json.Marshal(struct {
		Origin store.Location `json:"o"`
		Stops  string         `json:"s"`
	}{origin, strings.Join(ids, "|")})

	sum := sha1.Sum(b)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
