package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type FeedbackHandler struct {
	log         *logger.Logger
	adaptiveSvc services.FeedbackAdaptiveService
}

func NewFeedbackHandler(log *logger.Logger, adaptiveSvc services.FeedbackAdaptiveService) *FeedbackHandler {
	return &FeedbackHandler{
		log:         log.With("handler", "FeedbackHandler"),
		adaptiveSvc: adaptiveSvc,
	}
}

// POST /api/feedback/adaptive?year=&month=
// Runs the monthly adaptive bias recomputation. Upstream failure is a 502;
// the audit row is written either way.
func (h *FeedbackHandler) Adaptive(c *gin.Context) {
	year, month, err := yearMonthParams(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_period", err)
		return
	}
	var req services.AdaptiveInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	result, err := h.adaptiveSvc.Adaptive(c.Request.Context(), middleware.SessionKey(c), year, month, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/feedback/adaptive/monthly-result?year=&month=
func (h *FeedbackHandler) MonthlyResult(c *gin.Context) {
	year, month, err := yearMonthParams(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_period", err)
		return
	}
	result, err := h.adaptiveSvc.MonthlyResult(c.Request.Context(), middleware.SessionKey(c), year, month)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
