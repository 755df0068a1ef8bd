package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/services"
)

type stubChecklistService struct {
	result *services.ChecklistResult
	err    error
}

func (s *stubChecklistService) SubmitToday(ctx context.Context, sessionKey string, input services.ChecklistSubmitInput) (*services.ChecklistResult, error) {
	return s.result, s.err
}

func (s *stubChecklistService) GetToday(ctx context.Context, sessionKey string) (*services.ChecklistResult, error) {
	return s.result, s.err
}

func checklistRouter(svc services.ChecklistService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log, _ := logger.New("test")
	h := NewChecklistHandler(log, svc)

	r := gin.New()
	r.GET("/api/checklist/today", h.GetToday)
	return r
}

func TestGetTodayNoSubmissionIsNull(t *testing.T) {
	r := checklistRouter(&stubChecklistService{err: apperr.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/checklist/today", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestGetTodayReturnsSubmission(t *testing.T) {
	recoID := uuid.New()
	r := checklistRouter(&stubChecklistService{result: &services.ChecklistResult{RecommendationID: recoID}})

	req := httptest.NewRequest(http.MethodGet, "/api/checklist/today", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), recoID.String())
}
