package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type ClothingHandler struct {
	log         *logger.Logger
	clothingSvc services.ClothingService
}

func NewClothingHandler(log *logger.Logger, clothingSvc services.ClothingService) *ClothingHandler {
	return &ClothingHandler{
		log:         log.With("handler", "ClothingHandler"),
		clothingSvc: clothingSvc,
	}
}

// POST /api/clothing
func (h *ClothingHandler) Create(c *gin.Context) {
	var req services.ClothingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := h.clothingSvc.Create(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GET /api/clothing/:id
func (h *ClothingHandler) Get(c *gin.Context) {
	id, err := clothingIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	item, err := h.clothingSvc.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, item)
}

// PUT /api/clothing/:id
func (h *ClothingHandler) Update(c *gin.Context) {
	id, err := clothingIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.ClothingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := h.clothingSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, item)
}

// DELETE /api/clothing/:id
func (h *ClothingHandler) Delete(c *gin.Context) {
	id, err := clothingIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.clothingSvc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/clothing?limit=
func (h *ClothingHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}
	items, err := h.clothingSvc.List(c.Request.Context(), limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

func clothingIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
