package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
	region string
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService, defaultRegion string) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
		region: defaultRegion,
	}
}

// GET /api/recommend/today
// Today's top outfit picks for the session's region.
func (h *RecommendationHandler) GetToday(c *gin.Context) {
	region, lat, lon, err := locationParams(c, h.region)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_location", err)
		return
	}
	result, err := h.recSvc.RecommendToday(c.Request.Context(), middleware.SessionKey(c), region, lat, lon)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/recommend/today/by-category
func (h *RecommendationHandler) GetTodayByCategory(c *gin.Context) {
	region, lat, lon, err := locationParams(c, h.region)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_location", err)
		return
	}
	result, err := h.recSvc.RecommendTodayByCategory(c.Request.Context(), middleware.SessionKey(c), region, lat, lon)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// Seoul city hall, the default when the client sends no coordinates.
const (
	fallbackRegion = "seoul"
	defaultLat     = 37.5665
	defaultLon     = 126.9780
)

func locationParams(c *gin.Context, defaultRegion string) (string, float64, float64, error) {
	if defaultRegion == "" {
		defaultRegion = fallbackRegion
	}
	region := c.DefaultQuery("region", defaultRegion)
	lat, lon := defaultLat, defaultLon
	if raw := c.Query("lat"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", 0, 0, err
		}
		lat = parsed
	}
	if raw := c.Query("lon"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", 0, 0, err
		}
		lon = parsed
	}
	return region, lat, lon, nil
}
