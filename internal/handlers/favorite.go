package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/middleware"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type FavoriteHandler struct {
	log         *logger.Logger
	favoriteSvc services.FavoriteService
}

func NewFavoriteHandler(log *logger.Logger, favoriteSvc services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		log:         log.With("handler", "FavoriteHandler"),
		favoriteSvc: favoriteSvc,
	}
}

// POST /api/favorites/:clothingId
func (h *FavoriteHandler) Add(c *gin.Context) {
	clothingID, err := favoriteIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.favoriteSvc.Add(c.Request.Context(), middleware.SessionKey(c), clothingID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// DELETE /api/favorites/:clothingId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	clothingID, err := favoriteIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.favoriteSvc.Remove(c.Request.Context(), middleware.SessionKey(c), clothingID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	ids, err := h.favoriteSvc.List(c.Request.Context(), middleware.SessionKey(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	RespondOK(c, gin.H{"clothingIds": ids})
}

// GET /api/favorites/:clothingId
func (h *FavoriteHandler) IsFavorite(c *gin.Context) {
	clothingID, err := favoriteIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	favorited, err := h.favoriteSvc.IsFavorite(c.Request.Context(), middleware.SessionKey(c), clothingID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"favorited": favorited})
}

func favoriteIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("clothingId"), 10, 64)
}
