// README: Redis-backed geocode cache and the Provider decorator that consults it.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const geocodeKeyPrefix = "tripcost:geocode:%s:%s"

// GeocodeCache stores text → coordinate answers per provider.
type GeocodeCache interface {
	Get(ctx context.Context, provider, text string) (orb.Point, bool, error)
	Set(ctx context.Context, provider, text string, p orb.Point) error
}

type RedisGeocodeCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisGeocodeCache(redis *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{redis: redis, ttl: ttl}
}

func (c *RedisGeocodeCache) Get(ctx context.Context, provider, text string) (orb.Point, bool, error) {
	val, err := c.redis.Get(ctx, geocodeKey(provider, text)).Result()
	if err == redis.Nil {
		return orb.Point{}, false, nil
	}
	if err != nil {
		return orb.Point{}, false, err
	}
	p, err := decodeCachedPoint(val)
	if err != nil {
		return orb.Point{}, false, err
	}
	return p, true, nil
}

func (c *RedisGeocodeCache) Set(ctx context.Context, provider, text string, p orb.Point) error {
	return c.redis.Set(ctx, geocodeKey(provider, text), encodeCachedPoint(p), c.ttl).Err()
}

func geocodeKey(provider, text string) string {
	return fmt.Sprintf(geocodeKeyPrefix, provider, strings.ToLower(strings.TrimSpace(text)))
}

// Values are stored as "lon,lat".
func encodeCachedPoint(p orb.Point) string {
	return strconv.FormatFloat(p.Lon(), 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat(), 'f', -1, 64)
}

func decodeCachedPoint(v string) (orb.Point, error) {
	lon, lat, ok := strings.Cut(v, ",")
	if !ok {
		return orb.Point{}, fmt.Errorf("bad cached point %q", v)
	}
	x, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("bad cached point %q: %w", v, err)
	}
	y, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("bad cached point %q: %w", v, err)
	}
	return orb.Point{x, y}, nil
}

// CachedProvider answers Geocode from cache when possible. Cache failures
// are logged and the call falls through to the wrapped provider.
type CachedProvider struct {
	Provider
	cache  GeocodeCache
	logger *zap.Logger
}

func NewCachedProvider(p Provider, cache GeocodeCache, logger *zap.Logger) *CachedProvider {
	return &CachedProvider{Provider: p, cache: cache, logger: logger}
}

func (c *CachedProvider) Geocode(ctx context.Context, text string) (orb.Point, error) {
	name := c.Provider.Name()
	p, ok, err := c.cache.Get(ctx, name, text)
	if err != nil {
		c.logger.Warn("geocode cache read failed", zap.String("provider", name), zap.Error(err))
	} else if ok {
		return p, nil
	}

	p, err = c.Provider.Geocode(ctx, text)
	if err != nil {
		return p, err
	}
	if err := c.cache.Set(ctx, name, text, p); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("geocode cache write failed", zap.String("provider", name), zap.Error(err))
	}
	return p, nil
}
