package app

import (
	"github.com/teamwear/weatherfit-backend/internal/handlers"
	"github.com/teamwear/weatherfit-backend/internal/logger"
)

type Handlers struct {
	Session        *handlers.SessionHandler
	Checklist      *handlers.ChecklistHandler
	Recommendation *handlers.RecommendationHandler
	Outfit         *handlers.OutfitHandler
	Feedback       *handlers.FeedbackHandler
	Clothing       *handlers.ClothingHandler
	Weather        *handlers.WeatherHandler
	Closet         *handlers.ClosetHandler
	Favorite       *handlers.FavoriteHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Session:        handlers.NewSessionHandler(log, services.Session),
		Checklist:      handlers.NewChecklistHandler(log, services.Checklist),
		Recommendation: handlers.NewRecommendationHandler(log, services.Recommendation, cfg.DefaultRegion),
		Outfit:         handlers.NewOutfitHandler(log, services.Outfit),
		Feedback:       handlers.NewFeedbackHandler(log, services.FeedbackAdaptive),
		Clothing:       handlers.NewClothingHandler(log, services.Clothing),
		Weather:        handlers.NewWeatherHandler(log, services.Weather, cfg.DefaultRegion),
		Closet:         handlers.NewClosetHandler(log, services.Closet),
		Favorite:       handlers.NewFavoriteHandler(log, services.Favorite),
	}
}
