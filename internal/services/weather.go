package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/clients/rediscache"
	"github.com/teamwear/weatherfit-backend/internal/clients/weather"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

// WeatherService resolves today's weather: redis hot cache, then the
// daily_weather table, then the upstream provider (persisting the result on
// the way back).
type WeatherService interface {
	TodaySmart(ctx context.Context, region string, lat, lon float64) (*types.WeatherSnapshot, error)
}

type weatherService struct {
	db          *gorm.DB
	log         *logger.Logger
	weatherRepo repos.DailyWeatherRepo
	provider    weather.Provider
	cache       rediscache.WeatherCache
}

// NewWeatherService accepts a nil cache; caching is then skipped entirely.
func NewWeatherService(db *gorm.DB, log *logger.Logger, weatherRepo repos.DailyWeatherRepo, provider weather.Provider, cache rediscache.WeatherCache) WeatherService {
	return &weatherService{
		db:          db,
		log:         log.With("service", "WeatherService"),
		weatherRepo: weatherRepo,
		provider:    provider,
		cache:       cache,
	}
}

func (s *weatherService) TodaySmart(ctx context.Context, region string, lat, lon float64) (*types.WeatherSnapshot, error) {
	today := utils.TodayKST()
	dateKey := today.Format("2006-01-02")

	if s.cache != nil {
		if snap, ok := s.cache.Get(ctx, region, dateKey); ok {
			return snap, nil
		}
	}

	row, err := s.weatherRepo.GetByRegionAndDate(ctx, nil, region, today)
	if err == nil {
		snap := snapshotFromRow(row)
		if s.cache != nil {
			s.cache.Set(ctx, region, dateKey, snap)
		}
		return snap, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	snap, err := s.provider.Today(ctx, region, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}

	persisted := &types.DailyWeather{
		Region:        region,
		WeatherDate:   today,
		AvgTemp:       snap.AvgTemp,
		MinTemp:       snap.MinTemp,
		MaxTemp:       snap.MaxTemp,
		FeelsLikeTemp: snap.FeelsLikeTemp,
		Humidity:      snap.Humidity,
		WindSpeed:     snap.WindSpeed,
		CloudAmount:   snap.CloudAmount,
		Sky:           snap.Sky,
	}
	if err := s.weatherRepo.Upsert(ctx, nil, persisted); err != nil {
		// Persisting is an optimization; today's recommendation still works.
		s.log.Warn("Daily weather persist failed", "region", region, "error", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, region, dateKey, snap)
	}
	return snap, nil
}

func snapshotFromRow(row *types.DailyWeather) *types.WeatherSnapshot {
	return &types.WeatherSnapshot{
		Region:        row.Region,
		AvgTemp:       row.AvgTemp,
		MinTemp:       row.MinTemp,
		MaxTemp:       row.MaxTemp,
		FeelsLikeTemp: row.FeelsLikeTemp,
		Humidity:      row.Humidity,
		WindSpeed:     row.WindSpeed,
		CloudAmount:   row.CloudAmount,
		Sky:           row.Sky,
	}
}
