package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/teamwear/weatherfit-backend/internal/clients/comfortai"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

func recommendationFixture(pool []*types.ClothingItem, ai *fakeComfortAI) (RecommendationService, *fakeEventRepo) {
	log := testLogger()
	events := &fakeEventRepo{}
	svc := NewRecommendationService(
		nil, log,
		&fakeWeatherService{snap: &types.WeatherSnapshot{Region: "seoul", FeelsLikeTemp: 30, AvgTemp: 30}},
		&fakeCandidateSelector{pool: pool},
		NewComfortScorer(),
		ai,
		newFakeChecklistRepo(),
		&fakeAdaptiveRunRepo{},
		NewEventLogService(log, events),
		0,
	)
	return svc, events
}

func hotPool() []*types.ClothingItem {
	return []*types.ClothingItem{
		item(1, types.CategoryTop, types.ThicknessThin, 9),
		item(2, types.CategoryBottom, types.ThicknessThin, 7),
		item(3, types.CategoryTop, types.ThicknessThin, 5),
		item(4, types.CategoryBottom, types.ThicknessThin, 3),
	}
}

func TestRecommendTodayUsesAIScores(t *testing.T) {
	low, high, mid := 0.2, 0.9, 0.5
	ai := &fakeComfortAI{results: []comfortai.ScoreResult{
		{ClothingID: 1, Score: &low},
		{ClothingID: 2, Score: &high},
		{ClothingID: 3, Score: &mid},
	}}
	svc, events := recommendationFixture(hotPool(), ai)

	got, err := svc.RecommendToday(context.Background(), "s1", "seoul", 37.5, 126.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Strategy != StrategyAIScore {
		t.Fatalf("want AI strategy, got %s (%s)", got.Strategy, got.FallbackReason)
	}
	if len(got.Items) != 3 {
		t.Fatalf("want 3 items, got %d", len(got.Items))
	}
	if got.Items[0].Item.ID != 2 || got.Items[1].Item.ID != 3 || got.Items[2].Item.ID != 1 {
		t.Errorf("score ordering wrong: %d %d %d", got.Items[0].Item.ID, got.Items[1].Item.ID, got.Items[2].Item.ID)
	}
	if len(events.events) != 1 || events.events[0].EventType != types.EventRecoGenerated {
		t.Errorf("want exactly one RECO_GENERATED event, got %v", events.eventTypes())
	}
}

func TestRecommendTodayFallsBackWhenAIFails(t *testing.T) {
	ai := &fakeComfortAI{err: errors.New("connect timeout")}
	svc, events := recommendationFixture(hotPool(), ai)

	got, err := svc.RecommendToday(context.Background(), "s1", "seoul", 37.5, 126.9)
	if err != nil {
		t.Fatalf("AI failure must never surface: %v", err)
	}
	if got.Strategy != StrategyPopularity {
		t.Fatalf("want fallback strategy, got %s", got.Strategy)
	}
	if got.FallbackReason == "" {
		t.Error("fallback reason should be set")
	}
	// Popularity ordering: ids 1, 2, 3 by selected_count desc.
	if len(got.Items) != 3 || got.Items[0].Item.ID != 1 || got.Items[1].Item.ID != 2 || got.Items[2].Item.ID != 3 {
		t.Errorf("fallback ordering wrong: %v", got.Items)
	}
	for _, ri := range got.Items {
		if ri.Score != nil {
			t.Error("fallback items carry no score")
		}
	}
	if len(events.events) != 1 || events.events[0].EventType != types.EventRecoFallback {
		t.Errorf("want exactly one RECO_FALLBACK event, got %v", events.eventTypes())
	}
}

func TestRecommendTodayFallsBackOnUnusableScores(t *testing.T) {
	nan := math.NaN()
	ai := &fakeComfortAI{results: []comfortai.ScoreResult{
		{ClothingID: 1, Score: &nan},
		{ClothingID: 2, Score: nil},
	}}
	svc, _ := recommendationFixture(hotPool(), ai)

	got, err := svc.RecommendToday(context.Background(), "s1", "seoul", 37.5, 126.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Strategy != StrategyPopularity {
		t.Fatalf("NaN and missing scores must trigger fallback, got %s", got.Strategy)
	}
}

func TestRecommendTodayEmptyPool(t *testing.T) {
	ai := &fakeComfortAI{}
	svc, events := recommendationFixture(nil, ai)

	got, err := svc.RecommendToday(context.Background(), "s1", "seoul", 37.5, 126.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("want no items, got %d", len(got.Items))
	}
	if got.Strategy != StrategyPopularity {
		t.Errorf("empty pool reports the fallback strategy, got %s", got.Strategy)
	}
	if ai.calls != 0 {
		t.Error("no AI call should happen with an empty batch")
	}
	if len(events.events) != 1 || events.events[0].EventType != types.EventRecoFallback {
		t.Errorf("want exactly one RECO_FALLBACK event, got %v", events.eventTypes())
	}
}

func TestRecommendTodayReturnsFewerThanLimit(t *testing.T) {
	pool := []*types.ClothingItem{
		item(1, types.CategoryTop, types.ThicknessThin, 1),
		item(2, types.CategoryBottom, types.ThicknessThin, 2),
	}
	s1, s2 := 0.4, 0.6
	ai := &fakeComfortAI{results: []comfortai.ScoreResult{
		{ClothingID: 1, Score: &s1},
		{ClothingID: 2, Score: &s2},
	}}
	svc, _ := recommendationFixture(pool, ai)

	got, err := svc.RecommendToday(context.Background(), "s1", "seoul", 37.5, 126.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("want 2 items when only 2 are eligible, got %d", len(got.Items))
	}
}

func TestRecommendTodayByCategoryGroups(t *testing.T) {
	s1, s2, s3, s4 := 0.9, 0.8, 0.7, 0.6
	ai := &fakeComfortAI{results: []comfortai.ScoreResult{
		{ClothingID: 1, Score: &s1},
		{ClothingID: 2, Score: &s2},
		{ClothingID: 3, Score: &s3},
		{ClothingID: 4, Score: &s4},
	}}
	svc, _ := recommendationFixture(hotPool(), ai)

	got, err := svc.RecommendTodayByCategory(context.Background(), "s1", "seoul", 37.5, 126.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Categories) != len(types.TodayCategories) {
		t.Fatalf("want %d category groups, got %d", len(types.TodayCategories), len(got.Categories))
	}
	for _, group := range got.Categories {
		for _, ri := range group.Items {
			if ri.Item.Category != group.Category {
				t.Errorf("item %d grouped under wrong category %s", ri.Item.ID, group.Category)
			}
		}
	}
}
