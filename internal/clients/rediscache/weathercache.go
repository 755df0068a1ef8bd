package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

// WeatherCache is the hot cache in front of the daily_weather table and the
// upstream provider. A miss or a redis error both read as a miss.
type WeatherCache interface {
	Get(ctx context.Context, region string, date string) (*types.WeatherSnapshot, bool)
	Set(ctx context.Context, region string, date string, snap *types.WeatherSnapshot)
	Close() error
}

type weatherCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewWeatherCache(log *logger.Logger) (WeatherCache, error) {
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlMinutes := utils.GetEnvAsInt("WEATHER_CACHE_TTL_MINUTES", 30, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &weatherCache{
		log: log.With("client", "RedisWeatherCache"),
		rdb: rdb,
		ttl: time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func weatherKey(region, date string) string {
	return fmt.Sprintf("weather:%s:%s", region, date)
}

func (c *weatherCache) Get(ctx context.Context, region string, date string) (*types.WeatherSnapshot, bool) {
	raw, err := c.rdb.Get(ctx, weatherKey(region, date)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Weather cache read failed", "region", region, "error", err)
		}
		return nil, false
	}
	var snap types.WeatherSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.log.Warn("Weather cache entry corrupt, ignoring", "region", region, "error", err)
		return nil, false
	}
	return &snap, true
}

func (c *weatherCache) Set(ctx context.Context, region string, date string, snap *types.WeatherSnapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, weatherKey(region, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Weather cache write failed", "region", region, "error", err)
	}
}

func (c *weatherCache) Close() error {
	return c.rdb.Close()
}
