package geo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	geocodeKeyPrefix  = "geo:geocode:"
	defaultGeocodeTTL = 24 * time.Hour
)

// CachedClient is a read-through Redis cache in front of a GeoClient.
// Only Geocode is cached: addresses resolve to stable coordinates, while
// routes may change with traffic data. Cache failures degrade to the inner
// client, never to the caller.
type CachedClient struct {
	inner ports.GeoClient
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedClient wraps a GeoClient with a Redis geocoding cache.
// A non-positive ttl falls back to the default of 24 hours.
func NewCachedClient(
	inner ports.GeoClient,
	redisClient *redis.Client,
	ttl time.Duration,
	log zerolog.Logger,
) *CachedClient {
	if ttl <= 0 {
		ttl = defaultGeocodeTTL
	}

	return &CachedClient{
		inner: inner,
		redis: redisClient,
		ttl:   ttl,
		log:   log.With().Str("component", "geo_cache").Logger(),
	}
}

// cachedPoint is the wire format of a cached geocoding result.
type cachedPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocode returns the cached coordinates for the address, or resolves and
// caches them. Negative results (address not found) are not cached: the
// address may be registered upstream later.
func (c *CachedClient) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	key := geocodeKey(address)

	raw, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var cached cachedPoint
		if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
			if point, pointErr := kernel.NewGeoPoint(cached.Lat, cached.Lon); pointErr == nil {
				return point, nil
			}
		}
		c.log.Warn().Str("key", key).Msg("discarding unreadable cache entry")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling through")
	}

	point, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	payload, err := json.Marshal(cachedPoint{Lat: point.Latitude(), Lon: point.Longitude()})
	if err == nil {
		if setErr := c.redis.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("key", key).Msg("cache write failed")
		}
	}

	return point, nil
}

// Route delegates to the inner client; routes are not cached.
func (c *CachedClient) Route(ctx context.Context, origin, destination kernel.GeoPoint) (ports.Route, error) {
	return c.inner.Route(ctx, origin, destination)
}

// geocodeKey hashes the normalized address so arbitrary user input never
// lands in a Redis key.
func geocodeKey(address string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(address))))
	return geocodeKeyPrefix + hex.EncodeToString(sum[:])
}
