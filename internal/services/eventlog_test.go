package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/teamwear/weatherfit-backend/internal/types"
)

func TestEmitWritesEvent(t *testing.T) {
	log := testLogger()
	repo := &fakeEventRepo{}
	svc := NewEventLogService(log, repo)

	recoID := uuid.New()
	err := svc.Emit(context.Background(), "s1", &recoID, types.FunnelStepShown, types.EventRecoGenerated, map[string]interface{}{"zone": "HOT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("want one event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.SessionKey != "s1" || e.FunnelStep != types.FunnelStepShown || e.EventType != types.EventRecoGenerated {
		t.Errorf("event fields wrong: %+v", e)
	}
	if e.RecommendationID == nil || *e.RecommendationID != recoID {
		t.Error("recommendationId not threaded through")
	}
	if len(e.Payload) == 0 {
		t.Error("payload missing")
	}
}

// Emit surfaces the write error so callers can observe it, but every call
// site discards it; this pins down the return contract.
func TestEmitReturnsWriteError(t *testing.T) {
	log := testLogger()
	repo := &fakeEventRepo{appendErr: errors.New("insert failed")}
	svc := NewEventLogService(log, repo)

	err := svc.Emit(context.Background(), "s1", nil, types.FunnelStepChecklist, types.EventChecklistSubmitted, nil)
	if err == nil {
		t.Fatal("write failure should be observable")
	}
}

func TestEmitNilPayload(t *testing.T) {
	log := testLogger()
	repo := &fakeEventRepo{}
	svc := NewEventLogService(log, repo)

	if err := svc.Emit(context.Background(), "s1", nil, types.FunnelStepChecklist, types.EventChecklistSubmitted, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events[0].Payload) != 0 {
		t.Error("nil payload should stay empty")
	}
}
