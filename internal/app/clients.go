package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/teamwear/weatherfit-backend/internal/clients/adaptiveai"
	"github.com/teamwear/weatherfit-backend/internal/clients/comfortai"
	"github.com/teamwear/weatherfit-backend/internal/clients/rediscache"
	"github.com/teamwear/weatherfit-backend/internal/clients/weather"
	"github.com/teamwear/weatherfit-backend/internal/logger"
)

type Clients struct {
	Weather      weather.Provider
	WeatherCache rediscache.WeatherCache
	ComfortAI    comfortai.Client
	AdaptiveAI   adaptiveai.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis is optional; without it weather lookups just skip the hot cache.
	var cache rediscache.WeatherCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := rediscache.NewWeatherCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init weather cache: %w", err)
		}
		cache = c
	}

	provider, err := weather.NewOpenWeatherProvider(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init weather provider: %w", err)
	}

	return Clients{
		Weather:      provider,
		WeatherCache: cache,
		ComfortAI:    comfortai.New(log),
		AdaptiveAI:   adaptiveai.New(log),
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.WeatherCache != nil {
		_ = c.WeatherCache.Close()
	}
}
