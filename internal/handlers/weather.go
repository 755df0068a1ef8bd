package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type WeatherHandler struct {
	log        *logger.Logger
	weatherSvc services.WeatherService
	region     string
}

func NewWeatherHandler(log *logger.Logger, weatherSvc services.WeatherService, defaultRegion string) *WeatherHandler {
	return &WeatherHandler{
		log:        log.With("handler", "WeatherHandler"),
		weatherSvc: weatherSvc,
		region:     defaultRegion,
	}
}

// GET /api/weather/today
func (h *WeatherHandler) GetToday(c *gin.Context) {
	region, lat, lon, err := locationParams(c, h.region)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_location", err)
		return
	}
	snap, err := h.weatherSvc.TodaySmart(c.Request.Context(), region, lat, lon)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, snap)
}
