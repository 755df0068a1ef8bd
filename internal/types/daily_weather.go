package types

import (
	"time"

	"github.com/google/uuid"
)

// DailyWeather is one region's reading for one KST day, persisted so repeat
// recommendation calls do not refetch the provider.
type DailyWeather struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Region      string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_weather_region_date,priority:1" json:"region"`
	WeatherDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_weather_region_date,priority:2" json:"weather_date"`

	AvgTemp       float64 `gorm:"not null" json:"avg_temp"`
	MinTemp       float64 `gorm:"not null" json:"min_temp"`
	MaxTemp       float64 `gorm:"not null" json:"max_temp"`
	FeelsLikeTemp float64 `json:"feels_like_temp"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	CloudAmount   int     `json:"cloud_amount"`
	Sky           string  `gorm:"type:varchar(20)" json:"sky,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyWeather) TableName() string { return "daily_weather" }
