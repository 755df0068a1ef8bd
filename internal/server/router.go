package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/handlers"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
)

type RouterConfig struct {
	SessionHandler        *handlers.SessionHandler
	SessionMiddleware     *middleware.SessionMiddleware
	ChecklistHandler      *handlers.ChecklistHandler
	RecommendationHandler *handlers.RecommendationHandler
	OutfitHandler         *handlers.OutfitHandler
	FeedbackHandler       *handlers.FeedbackHandler
	ClothingHandler       *handlers.ClothingHandler
	WeatherHandler        *handlers.WeatherHandler
	ClosetHandler         *handlers.ClosetHandler
	FavoriteHandler       *handlers.FavoriteHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Session-Key"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/session", cfg.SessionHandler.Issue)
		api.GET("/weather/today", cfg.WeatherHandler.GetToday)

		// Catalog admin
		api.POST("/clothing", cfg.ClothingHandler.Create)
		api.GET("/clothing", cfg.ClothingHandler.List)
		api.GET("/clothing/:id", cfg.ClothingHandler.Get)
		api.PUT("/clothing/:id", cfg.ClothingHandler.Update)
		api.DELETE("/clothing/:id", cfg.ClothingHandler.Delete)
	}

	// ===============
	// || Session   ||
	// ===============
	session := router.Group("/api")
	session.Use(cfg.SessionMiddleware.RequireSession())
	// Checklist
	session.POST("/checklist/today", cfg.ChecklistHandler.SubmitToday)
	session.GET("/checklist/today", cfg.ChecklistHandler.GetToday)
	// Recommendation
	session.GET("/recommend/today", cfg.RecommendationHandler.GetToday)
	session.GET("/recommend/today/by-category", cfg.RecommendationHandler.GetTodayByCategory)
	session.POST("/recommend/select", cfg.OutfitHandler.Select)
	// Outfit of day
	session.GET("/outfit/today", cfg.OutfitHandler.GetToday)
	session.POST("/outfit/today", cfg.OutfitHandler.SaveToday)
	session.POST("/outfit/today/feedback", cfg.OutfitHandler.SubmitFeedback)
	session.GET("/outfit/history/monthly", cfg.OutfitHandler.MonthlyHistory)
	// Adaptive feedback
	session.POST("/feedback/adaptive", cfg.FeedbackHandler.Adaptive)
	session.GET("/feedback/adaptive/monthly-result", cfg.FeedbackHandler.MonthlyResult)
	// Closet
	session.GET("/closet/items", cfg.ClosetHandler.ListItems)
	session.POST("/closet/items", cfg.ClosetHandler.AddItem)
	session.DELETE("/closet/items/:clothingId", cfg.ClosetHandler.RemoveItem)
	// Favorites
	session.GET("/favorites", cfg.FavoriteHandler.List)
	session.GET("/favorites/:clothingId", cfg.FavoriteHandler.IsFavorite)
	session.POST("/favorites/:clothingId", cfg.FavoriteHandler.Add)
	session.DELETE("/favorites/:clothingId", cfg.FavoriteHandler.Remove)

	return router
}
