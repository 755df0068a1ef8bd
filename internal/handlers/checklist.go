package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type ChecklistHandler struct {
	log          *logger.Logger
	checklistSvc services.ChecklistService
}

func NewChecklistHandler(log *logger.Logger, checklistSvc services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		log:          log.With("handler", "ChecklistHandler"),
		checklistSvc: checklistSvc,
	}
}

// POST /api/checklist/today
// Idempotent per (session, KST day): the first call mints the day's
// recommendationId, repeats return the same id with created=false.
func (h *ChecklistHandler) SubmitToday(c *gin.Context) {
	var req services.ChecklistSubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.checklistSvc.SubmitToday(c.Request.Context(), middleware.SessionKey(c), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/checklist/today
// A day with no submission is not an error; the client gets 200 with null.
func (h *ChecklistHandler) GetToday(c *gin.Context) {
	result, err := h.checklistSvc.GetToday(c.Request.Context(), middleware.SessionKey(c))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			RespondOK(c, nil)
			return
		}
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
