package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/clients/adaptiveai"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

func adaptiveFixture(ai *fakeAdaptiveAI) (FeedbackAdaptiveService, *fakeAdaptiveRunRepo, *fakeOutfitRepo, *fakeEventRepo) {
	log := testLogger()
	runs := &fakeAdaptiveRunRepo{}
	outfits := newFakeOutfitRepo()
	events := &fakeEventRepo{}
	svc := NewFeedbackAdaptiveService(nil, log, runs, outfits, ai, NewEventLogService(log, events))
	return svc, runs, outfits, events
}

func seedFeedbackOutfit(outfits *fakeOutfitRepo, sessionKey string) {
	rating := 1
	outfits.rows[checklistKey(sessionKey, utils.TodayKST())] = &types.OutfitOfDay{
		SessionKey:     sessionKey,
		OutfitDate:     utils.TodayKST(),
		FeedbackRating: &rating,
		Items:          []types.OutfitItem{{ClothingID: 1, SortOrder: 1}, {ClothingID: 2, SortOrder: 2}},
	}
}

func thisPeriod() (int, int) {
	today := utils.TodayKST()
	return today.Year(), int(today.Month())
}

func TestAdaptiveSuccessWritesAuditTrail(t *testing.T) {
	ai := &fakeAdaptiveAI{resp: &adaptiveai.AdaptiveResponse{UserBias: 62}}
	svc, runs, outfits, events := adaptiveFixture(ai)
	seedFeedbackOutfit(outfits, "s1")
	year, month := thisPeriod()

	got, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != types.RunSucceeded {
		t.Fatalf("want SUCCEEDED, got %s", got.Status)
	}
	if got.UserBias == nil || *got.UserBias != 62 {
		t.Fatalf("bias not threaded through: %v", got.UserBias)
	}

	if len(runs.runs) != 1 {
		t.Fatalf("want one audit row, got %d", len(runs.runs))
	}
	run := runs.runs[0]
	if run.Status != types.RunSucceeded || run.UserBias == nil || *run.UserBias != 62 {
		t.Errorf("audit row not flipped to SUCCEEDED: %+v", run)
	}
	if run.SucceededAt == nil {
		t.Error("succeeded_at missing")
	}

	wantEvents := []string{types.EventAdaptiveRequested, types.EventAdaptiveSucceeded}
	gotEvents := events.eventTypes()
	if len(gotEvents) != 2 || gotEvents[0] != wantEvents[0] || gotEvents[1] != wantEvents[1] {
		t.Errorf("event sequence wrong: %v", gotEvents)
	}
}

func TestAdaptiveFailureSurfacesAndMarksFailed(t *testing.T) {
	ai := &fakeAdaptiveAI{err: errors.New("read timeout")}
	svc, runs, outfits, events := adaptiveFixture(ai)
	seedFeedbackOutfit(outfits, "s1")
	year, month := thisPeriod()

	_, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{})
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("upstream failure must surface as ErrUpstream, got %v", err)
	}

	if len(runs.runs) != 1 || runs.runs[0].Status != types.RunFailed {
		t.Fatalf("audit row must be FAILED, got %+v", runs.runs)
	}
	if runs.runs[0].FailedAt == nil {
		t.Error("failed_at missing")
	}

	gotEvents := events.eventTypes()
	if len(gotEvents) != 2 || gotEvents[1] != types.EventAdaptiveFailed {
		t.Errorf("event sequence wrong: %v", gotEvents)
	}
}

func TestAdaptiveRequiresSamples(t *testing.T) {
	ai := &fakeAdaptiveAI{resp: &adaptiveai.AdaptiveResponse{UserBias: 50}}
	svc, runs, _, _ := adaptiveFixture(ai)
	year, month := thisPeriod()

	_, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("no samples should be invalid, got %v", err)
	}
	if len(runs.runs) != 0 {
		t.Error("no audit row without samples")
	}
}

func TestAdaptiveRejectsOutOfRangeSampleDirection(t *testing.T) {
	ai := &fakeAdaptiveAI{resp: &adaptiveai.AdaptiveResponse{UserBias: 50}}
	svc, runs, _, _ := adaptiveFixture(ai)
	year, month := thisPeriod()

	input := AdaptiveInput{Samples: []adaptiveai.Sample{
		{Timestamp: utils.TodayKST(), Direction: 2, SelectedClothingIDs: []int64{1}},
	}}
	_, err := svc.Adaptive(context.Background(), "s1", year, month, input)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("direction 2 should be invalid, got %v", err)
	}
	if len(runs.runs) != 0 {
		t.Error("no audit row for a rejected request")
	}
	if ai.lastReq.FeedbackID != (uuid.UUID{}) {
		t.Error("upstream must not be called with bad samples")
	}
}

func TestAdaptivePrevBiasChain(t *testing.T) {
	ai := &fakeAdaptiveAI{resp: &adaptiveai.AdaptiveResponse{UserBias: 55}}
	svc, runs, outfits, _ := adaptiveFixture(ai)
	seedFeedbackOutfit(outfits, "s1")
	year, month := thisPeriod()

	// No prior run, no explicit value: neutral default.
	if _, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ai.lastReq.PrevBias != defaultBias {
		t.Errorf("want neutral default bias %d, got %d", defaultBias, ai.lastReq.PrevBias)
	}

	// Latest succeeded bias wins over the default.
	prior := 70
	runs.biasValue = &prior
	if _, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ai.lastReq.PrevBias != 70 {
		t.Errorf("want stored bias 70, got %d", ai.lastReq.PrevBias)
	}

	// Explicit request value wins over everything.
	explicit := 30
	if _, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{PrevBias: &explicit}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ai.lastReq.PrevBias != 30 {
		t.Errorf("want explicit bias 30, got %d", ai.lastReq.PrevBias)
	}
}

func TestAdaptiveValidatesRange(t *testing.T) {
	ai := &fakeAdaptiveAI{resp: &adaptiveai.AdaptiveResponse{UserBias: 50}}
	svc, _, outfits, _ := adaptiveFixture(ai)
	seedFeedbackOutfit(outfits, "s1")
	year, month := thisPeriod()

	outOfMonth := "1999-01-01"
	_, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{From: &outOfMonth})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("range outside the month should be invalid, got %v", err)
	}

	garbage := "not-a-date"
	_, err = svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{To: &garbage})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("malformed date should be invalid, got %v", err)
	}

	_, err = svc.Adaptive(context.Background(), "s1", year, 13, AdaptiveInput{})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("month 13 should be invalid, got %v", err)
	}
}

func TestMonthlyResultReturnsLatestRun(t *testing.T) {
	ai := &fakeAdaptiveAI{err: errors.New("down")}
	svc, _, outfits, _ := adaptiveFixture(ai)
	seedFeedbackOutfit(outfits, "s1")
	year, month := thisPeriod()

	if _, err := svc.Adaptive(context.Background(), "s1", year, month, AdaptiveInput{}); err == nil {
		t.Fatal("expected upstream failure")
	}

	got, err := svc.MonthlyResult(context.Background(), "s1", year, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != types.RunFailed {
		t.Errorf("latest run is the failed one, got %s", got.Status)
	}
}

func TestMonthlyResultNotFound(t *testing.T) {
	ai := &fakeAdaptiveAI{}
	svc, _, _, _ := adaptiveFixture(ai)

	_, err := svc.MonthlyResult(context.Background(), "s1", 2026, 1)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}
