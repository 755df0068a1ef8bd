package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type OutfitHandler struct {
	log       *logger.Logger
	outfitSvc services.OutfitService
}

func NewOutfitHandler(log *logger.Logger, outfitSvc services.OutfitService) *OutfitHandler {
	return &OutfitHandler{
		log:       log.With("handler", "OutfitHandler"),
		outfitSvc: outfitSvc,
	}
}

// POST /api/recommend/select
// Records the outfit the user picked from today's recommendation.
func (h *OutfitHandler) Select(c *gin.Context) {
	var req struct {
		ClothingIDs []int64 `json:"clothingIds"`
		Strategy    string  `json:"strategy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.outfitSvc.SelectToday(c.Request.Context(), middleware.SessionKey(c), req.ClothingIDs, req.Strategy)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/outfit/today
func (h *OutfitHandler) GetToday(c *gin.Context) {
	result, err := h.outfitSvc.GetToday(c.Request.Context(), middleware.SessionKey(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/outfit/today
// Same write path as select: the manually composed outfit replaces any
// earlier one for the day.
func (h *OutfitHandler) SaveToday(c *gin.Context) {
	var req struct {
		ClothingIDs []int64 `json:"clothingIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.outfitSvc.SelectToday(c.Request.Context(), middleware.SessionKey(c), req.ClothingIDs, "")
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/outfit/today/feedback
func (h *OutfitHandler) SubmitFeedback(c *gin.Context) {
	var req struct {
		Rating *int `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.outfitSvc.SubmitTodayFeedback(c.Request.Context(), middleware.SessionKey(c), *req.Rating)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/outfit/history/monthly?year=&month=
func (h *OutfitHandler) MonthlyHistory(c *gin.Context) {
	year, month, err := yearMonthParams(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_period", err)
		return
	}
	result, err := h.outfitSvc.MonthlyHistory(c.Request.Context(), middleware.SessionKey(c), year, month)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"year": year, "month": month, "outfits": result})
}

func yearMonthParams(c *gin.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
