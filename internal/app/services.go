package app

import (
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type Services struct {
	Session          services.SessionService
	EventLog         services.EventLogService
	Weather          services.WeatherService
	Checklist        services.ChecklistService
	Recommendation   services.RecommendationService
	Outfit           services.OutfitService
	FeedbackAdaptive services.FeedbackAdaptiveService
	Clothing         services.ClothingService
	Favorite         services.FavoriteService
	Closet           services.ClosetService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	sessionService := services.NewSessionService(db, log, repos.Session)
	eventLog := services.NewEventLogService(log, repos.RecommendationEvent)
	weatherService := services.NewWeatherService(db, log, repos.DailyWeather, clients.Weather, clients.WeatherCache)
	checklistService := services.NewChecklistService(db, log, repos.Checklist, eventLog)

	candidateSelector := services.NewCandidateSelector(db, log, repos.ClothingItem)
	scorer := services.NewComfortScorer()
	recommendationService := services.NewRecommendationService(
		db, log,
		weatherService,
		candidateSelector,
		scorer,
		clients.ComfortAI,
		repos.Checklist,
		repos.AdaptiveRun,
		eventLog,
		cfg.CandidatePool,
	)

	outfitService := services.NewOutfitService(db, log, repos.Outfit, repos.ClothingItem, repos.Checklist, eventLog)
	adaptiveService := services.NewFeedbackAdaptiveService(db, log, repos.AdaptiveRun, repos.Outfit, clients.AdaptiveAI, eventLog)
	clothingService := services.NewClothingService(db, log, repos.ClothingItem)
	favoriteService := services.NewFavoriteService(db, log, repos.Favorite, repos.ClothingItem)
	closetService := services.NewClosetService(db, log, repos.Closet, repos.ClothingItem, favoriteService)

	return Services{
		Session:          sessionService,
		EventLog:         eventLog,
		Weather:          weatherService,
		Checklist:        checklistService,
		Recommendation:   recommendationService,
		Outfit:           outfitService,
		FeedbackAdaptive: adaptiveService,
		Clothing:         clothingService,
		Favorite:         favoriteService,
		Closet:           closetService,
	}, nil
}
