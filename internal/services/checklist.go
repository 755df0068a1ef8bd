package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

// ChecklistSubmitInput is the daily checklist form.
type ChecklistSubmitInput struct {
	UsageType      types.UsageType      `json:"usageType"`
	ThicknessLevel types.ThicknessLevel `json:"thicknessLevel"`
	// Yesterday's comfort verdict: -1 cold, 0 fine, 1 hot.
	YesterdayFeedback *int `json:"yesterdayFeedback,omitempty"`
}

// ChecklistResult reports the day's recommendationId. Created is false when
// an earlier submission already minted it.
type ChecklistResult struct {
	RecommendationID uuid.UUID `json:"recommendationId"`
	Date             time.Time `json:"date"`
	Created          bool      `json:"created"`
}

// ChecklistService owns the first state of the daily funnel: exactly one
// recommendationId per (session, KST day).
type ChecklistService interface {
	SubmitToday(ctx context.Context, sessionKey string, input ChecklistSubmitInput) (*ChecklistResult, error)
	// GetToday returns apperr.ErrNotFound when nothing was submitted yet.
	GetToday(ctx context.Context, sessionKey string) (*ChecklistResult, error)
}

type checklistService struct {
	db            *gorm.DB
	log           *logger.Logger
	checklistRepo repos.ChecklistRepo
	events        EventLogService
}

func NewChecklistService(db *gorm.DB, log *logger.Logger, checklistRepo repos.ChecklistRepo, events EventLogService) ChecklistService {
	return &checklistService{
		db:            db,
		log:           log.With("service", "ChecklistService"),
		checklistRepo: checklistRepo,
		events:        events,
	}
}

func (s *checklistService) SubmitToday(ctx context.Context, sessionKey string, input ChecklistSubmitInput) (*ChecklistResult, error) {
	if !input.ThicknessLevel.Valid() {
		return nil, fmt.Errorf("%w: thicknessLevel is required", apperr.ErrInvalidArgument)
	}
	if input.UsageType == "" {
		input.UsageType = types.UsageBoth
	}
	if !input.UsageType.Valid() {
		return nil, fmt.Errorf("%w: unknown usageType %q", apperr.ErrInvalidArgument, input.UsageType)
	}
	if input.YesterdayFeedback != nil {
		if v := *input.YesterdayFeedback; v < -1 || v > 1 {
			return nil, fmt.Errorf("%w: yesterdayFeedback must be -1, 0 or 1", apperr.ErrInvalidArgument)
		}
	}

	today := utils.TodayKST()

	existing, err := s.checklistRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
	if err == nil {
		return &ChecklistResult{RecommendationID: existing.RecommendationID, Date: today, Created: false}, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	recoID := uuid.New()
	row := &types.ChecklistSubmission{
		SessionKey:        sessionKey,
		ChecklistDate:     today,
		RecommendationID:  recoID,
		UsageType:         input.UsageType,
		ThicknessLevel:    input.ThicknessLevel,
		YesterdayFeedback: input.YesterdayFeedback,
		Payload:           checklistPayload(input),
	}

	if err := s.checklistRepo.Create(ctx, nil, row); err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			// Lost the same-day race: the winner's row is authoritative.
			winner, readErr := s.checklistRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
			if readErr != nil {
				return nil, readErr
			}
			return &ChecklistResult{RecommendationID: winner.RecommendationID, Date: today, Created: false}, nil
		}
		return nil, err
	}

	_ = s.events.Emit(ctx, sessionKey, &recoID, types.FunnelStepChecklist, types.EventChecklistSubmitted, map[string]interface{}{
		"usageType":      input.UsageType,
		"thicknessLevel": input.ThicknessLevel,
		"clientDateISO":  today.Format("2006-01-02"),
	})

	return &ChecklistResult{RecommendationID: recoID, Date: today, Created: true}, nil
}

func (s *checklistService) GetToday(ctx context.Context, sessionKey string) (*ChecklistResult, error) {
	today := utils.TodayKST()
	row, err := s.checklistRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
	if err != nil {
		return nil, err
	}
	return &ChecklistResult{RecommendationID: row.RecommendationID, Date: today, Created: false}, nil
}

func checklistPayload(input ChecklistSubmitInput) datatypes.JSON {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
