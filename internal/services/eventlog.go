package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

// EventLogService is the best-effort funnel event sink. Emit returns the
// write error so tests can observe failures, but no caller may let it
// affect a primary response: log it, drop it, move on.
type EventLogService interface {
	Emit(ctx context.Context, sessionKey string, recommendationID *uuid.UUID, funnelStep, eventType string, payload map[string]interface{}) error
}

type eventLogService struct {
	log       *logger.Logger
	eventRepo repos.RecommendationEventRepo
}

func NewEventLogService(log *logger.Logger, eventRepo repos.RecommendationEventRepo) EventLogService {
	return &eventLogService{
		log:       log.With("service", "EventLogService"),
		eventRepo: eventRepo,
	}
}

func (s *eventLogService) Emit(ctx context.Context, sessionKey string, recommendationID *uuid.UUID, funnelStep, eventType string, payload map[string]interface{}) error {
	var raw datatypes.JSON
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			s.log.Warn("Event payload marshal failed, writing event without payload",
				"event_type", eventType, "error", err)
		} else {
			raw = datatypes.JSON(encoded)
		}
	}

	event := &types.RecommendationEvent{
		SessionKey:       sessionKey,
		RecommendationID: recommendationID,
		FunnelStep:       funnelStep,
		EventType:        eventType,
		Payload:          raw,
	}
	if err := s.eventRepo.Append(ctx, nil, event); err != nil {
		s.log.Warn("Funnel event write failed",
			"event_type", eventType, "funnel_step", funnelStep, "error", err)
		return err
	}
	return nil
}
