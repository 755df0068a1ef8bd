package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
	"github.com/teamwear/weatherfit-backend/internal/services"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

type ClosetHandler struct {
	log       *logger.Logger
	closetSvc services.ClosetService
}

func NewClosetHandler(log *logger.Logger, closetSvc services.ClosetService) *ClosetHandler {
	return &ClosetHandler{
		log:       log.With("handler", "ClosetHandler"),
		closetSvc: closetSvc,
	}
}

type closetAddRequest struct {
	ClothingID int64 `json:"clothingId" binding:"required"`
}

// GET /api/closet/items?category=&limit=
func (h *ClosetHandler) ListItems(c *gin.Context) {
	var category *types.ClothingCategory
	if raw := c.Query("category"); raw != "" {
		parsed := types.ClothingCategory(raw)
		if !parsed.Valid() {
			RespondError(c, http.StatusBadRequest, "invalid_category", nil)
			return
		}
		category = &parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}

	items, err := h.closetSvc.ListItems(c.Request.Context(), middleware.SessionKey(c), category, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

// POST /api/closet/items
func (h *ClosetHandler) AddItem(c *gin.Context) {
	var req closetAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.closetSvc.AddItem(c.Request.Context(), middleware.SessionKey(c), req.ClothingID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// DELETE /api/closet/items/:clothingId
func (h *ClosetHandler) RemoveItem(c *gin.Context) {
	clothingID, err := strconv.ParseInt(c.Param("clothingId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.closetSvc.RemoveItem(c.Request.Context(), middleware.SessionKey(c), clothingID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
