package app

import (
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
)

type Repos struct {
	Session             repos.SessionRepo
	ClothingItem        repos.ClothingItemRepo
	Checklist           repos.ChecklistRepo
	Outfit              repos.OutfitRepo
	AdaptiveRun         repos.AdaptiveRunRepo
	RecommendationEvent repos.RecommendationEventRepo
	DailyWeather        repos.DailyWeatherRepo
	Closet              repos.ClosetRepo
	Favorite            repos.FavoriteRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Session:             repos.NewSessionRepo(db, log),
		ClothingItem:        repos.NewClothingItemRepo(db, log),
		Checklist:           repos.NewChecklistRepo(db, log),
		Outfit:              repos.NewOutfitRepo(db, log),
		AdaptiveRun:         repos.NewAdaptiveRunRepo(db, log),
		RecommendationEvent: repos.NewRecommendationEventRepo(db, log),
		DailyWeather:        repos.NewDailyWeatherRepo(db, log),
		Closet:              repos.NewClosetRepo(db, log),
		Favorite:            repos.NewFavoriteRepo(db, log),
	}
}
