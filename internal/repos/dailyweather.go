package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

type DailyWeatherRepo interface {
	GetByRegionAndDate(ctx context.Context, tx *gorm.DB, region string, date time.Time) (*types.DailyWeather, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyWeather) error
}

type dailyWeatherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyWeatherRepo(db *gorm.DB, baseLog *logger.Logger) DailyWeatherRepo {
	return &dailyWeatherRepo{db: db, log: baseLog.With("repo", "DailyWeatherRepo")}
}

func (r *dailyWeatherRepo) GetByRegionAndDate(ctx context.Context, tx *gorm.DB, region string, date time.Time) (*types.DailyWeather, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.DailyWeather
	if err := transaction.WithContext(ctx).
		Where("region = ? AND weather_date = ?", region, date).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *dailyWeatherRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyWeather) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "region"}, {Name: "weather_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"avg_temp", "min_temp", "max_temp", "feels_like_temp",
				"humidity", "wind_speed", "cloud_amount", "sky", "updated_at",
			}),
		}).
		Create(row).Error
}
