package app

import (
	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		SessionHandler:        handlers.Session,
		SessionMiddleware:     middleware.Session,
		ChecklistHandler:      handlers.Checklist,
		RecommendationHandler: handlers.Recommendation,
		OutfitHandler:         handlers.Outfit,
		FeedbackHandler:       handlers.Feedback,
		ClothingHandler:       handlers.Clothing,
		WeatherHandler:        handlers.Weather,
		ClosetHandler:         handlers.Closet,
		FavoriteHandler:       handlers.Favorite,
	})
}
