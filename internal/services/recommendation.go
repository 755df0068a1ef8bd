package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/clients/comfortai"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

const (
	// StrategyAIScore tags recommendations ranked by the scoring service.
	StrategyAIScore = "AI_SCORE"
	// StrategyPopularity tags the deterministic fallback ranking.
	StrategyPopularity = "POPULARITY_FALLBACK"

	topK                 = 3
	defaultCandidatePool = 50
)

// RankedItem is one recommended garment. Score is nil on the fallback path.
type RankedItem struct {
	Item  *types.ClothingItem `json:"item"`
	Score *float64            `json:"score,omitempty"`
}

// RecommendationResult is one recommendation response. Strategy reports which
// ranking produced Items; FallbackReason is set only on the fallback path.
type RecommendationResult struct {
	RecommendationID *uuid.UUID             `json:"recommendationId,omitempty"`
	Date             time.Time              `json:"date"`
	Zone             types.ComfortZone      `json:"zone"`
	Weather          *types.WeatherSnapshot `json:"weather"`
	Strategy         string                 `json:"strategy"`
	FallbackReason   string                 `json:"fallbackReason,omitempty"`
	Items            []RankedItem           `json:"items"`
}

// CategoryRecommendation groups ranked items under one catalog category.
type CategoryRecommendation struct {
	Category types.ClothingCategory `json:"category"`
	Items    []RankedItem           `json:"items"`
}

// RecommendationByCategory is the per-category variant of the response.
type RecommendationByCategory struct {
	RecommendationID *uuid.UUID               `json:"recommendationId,omitempty"`
	Date             time.Time                `json:"date"`
	Zone             types.ComfortZone        `json:"zone"`
	Weather          *types.WeatherSnapshot   `json:"weather"`
	Strategy         string                   `json:"strategy"`
	FallbackReason   string                   `json:"fallbackReason,omitempty"`
	Categories       []CategoryRecommendation `json:"categories"`
}

// RecommendationService ranks today's candidates: AI scoring first, the
// deterministic popularity ranking whenever anything on the AI path fails.
// A scoring failure never surfaces to the caller.
type RecommendationService interface {
	RecommendToday(ctx context.Context, sessionKey, region string, lat, lon float64) (*RecommendationResult, error)
	RecommendTodayByCategory(ctx context.Context, sessionKey, region string, lat, lon float64) (*RecommendationByCategory, error)
}

type recommendationService struct {
	db            *gorm.DB
	log           *logger.Logger
	weatherSvc    WeatherService
	candidates    CandidateSelector
	scorer        *ComfortScorer
	aiClient      comfortai.Client
	checklistRepo repos.ChecklistRepo
	adaptiveRepo  repos.AdaptiveRunRepo
	events        EventLogService
	poolSize      int
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	weatherSvc WeatherService,
	candidates CandidateSelector,
	scorer *ComfortScorer,
	aiClient comfortai.Client,
	checklistRepo repos.ChecklistRepo,
	adaptiveRepo repos.AdaptiveRunRepo,
	events EventLogService,
	poolSize int,
) RecommendationService {
	if poolSize <= 0 {
		poolSize = defaultCandidatePool
	}
	return &recommendationService{
		db:            db,
		log:           log.With("service", "RecommendationService"),
		weatherSvc:    weatherSvc,
		candidates:    candidates,
		scorer:        scorer,
		aiClient:      aiClient,
		checklistRepo: checklistRepo,
		adaptiveRepo:  adaptiveRepo,
		events:        events,
		poolSize:      poolSize,
	}
}

// recoContext is everything a single recommendation request resolves up
// front: weather, the comfort zone, and today's checklist if there is one.
type recoContext struct {
	weather *types.WeatherSnapshot
	zone    types.ComfortZone
	temp    int
	recoID  *uuid.UUID
	usage   *types.UsageType
}

func (s *recommendationService) resolveContext(ctx context.Context, sessionKey, region string, lat, lon float64) (*recoContext, error) {
	snap, err := s.weatherSvc.TodaySmart(ctx, region, lat, lon)
	if err != nil {
		return nil, err
	}
	temp := int(math.Round(snap.FeelsLikeTemp))

	rc := &recoContext{
		weather: snap,
		zone:    ResolveZone(temp),
		temp:    temp,
	}

	checklist, err := s.checklistRepo.GetBySessionAndDate(ctx, nil, sessionKey, utils.TodayKST())
	if err == nil {
		id := checklist.RecommendationID
		rc.recoID = &id
		if checklist.UsageType != types.UsageBoth {
			usage := checklist.UsageType
			rc.usage = &usage
		}
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	return rc, nil
}

func (s *recommendationService) RecommendToday(ctx context.Context, sessionKey, region string, lat, lon float64) (*RecommendationResult, error) {
	start := time.Now()
	rc, err := s.resolveContext(ctx, sessionKey, region, lat, lon)
	if err != nil {
		return nil, err
	}

	pool, err := s.candidates.Select(ctx, rc.temp, CandidateFilter{
		Usage: rc.usage,
		Limit: s.poolSize,
	})
	if err != nil {
		return nil, err
	}

	base := s.scorer.Rank(rc.zone, pool, 0)
	ranked, strategy, reason := s.rerank(ctx, sessionKey, rc, base, topK)

	s.emitOutcome(ctx, sessionKey, rc, strategy, reason, len(ranked), time.Since(start))

	return &RecommendationResult{
		RecommendationID: rc.recoID,
		Date:             utils.TodayKST(),
		Zone:             rc.zone,
		Weather:          rc.weather,
		Strategy:         strategy,
		FallbackReason:   reason,
		Items:            ranked,
	}, nil
}

func (s *recommendationService) RecommendTodayByCategory(ctx context.Context, sessionKey, region string, lat, lon float64) (*RecommendationByCategory, error) {
	start := time.Now()
	rc, err := s.resolveContext(ctx, sessionKey, region, lat, lon)
	if err != nil {
		return nil, err
	}

	pool, err := s.candidates.Select(ctx, rc.temp, CandidateFilter{
		Usage: rc.usage,
		Limit: s.poolSize,
	})
	if err != nil {
		return nil, err
	}

	base := s.scorer.Rank(rc.zone, pool, 0)
	ranked, strategy, reason := s.rerank(ctx, sessionKey, rc, base, 0)

	categories := make([]CategoryRecommendation, 0, len(types.TodayCategories))
	total := 0
	for _, cat := range types.TodayCategories {
		group := make([]RankedItem, 0, topK)
		for _, ri := range ranked {
			if ri.Item.Category != cat {
				continue
			}
			group = append(group, ri)
			if len(group) == topK {
				break
			}
		}
		total += len(group)
		categories = append(categories, CategoryRecommendation{Category: cat, Items: group})
	}

	s.emitOutcome(ctx, sessionKey, rc, strategy, reason, total, time.Since(start))

	return &RecommendationByCategory{
		RecommendationID: rc.recoID,
		Date:             utils.TodayKST(),
		Zone:             rc.zone,
		Weather:          rc.weather,
		Strategy:         strategy,
		FallbackReason:   reason,
		Categories:       categories,
	}, nil
}

// rerank sends the popularity-ordered base batch to the scoring service and
// reorders by AI score. Any failure, missing id, or non-finite score falls
// back to the base ordering with a reason. limit <= 0 keeps everything.
func (s *recommendationService) rerank(ctx context.Context, sessionKey string, rc *recoContext, base []*types.ClothingItem, limit int) ([]RankedItem, string, string) {
	if len(base) == 0 {
		return []RankedItem{}, StrategyPopularity, "no eligible candidates"
	}

	results, err := s.aiClient.Score(ctx, comfortai.VariantBlendRatio, comfortai.ScoreRequest{
		Context: comfortai.ScoreContext{
			Weather:  *rc.weather,
			PrevBias: s.resolvePrevBias(ctx, sessionKey),
		},
		Items: scoreItemsFrom(base),
	})
	if err != nil {
		s.log.Warn("AI scoring failed, using popularity ranking", "error", err)
		return fallbackRanking(base, limit), StrategyPopularity, "ai call failed"
	}

	scoreByID := make(map[int64]float64, len(results))
	for _, r := range results {
		if r.Score == nil || math.IsNaN(*r.Score) || math.IsInf(*r.Score, 0) {
			continue
		}
		scoreByID[r.ClothingID] = *r.Score
	}
	if len(scoreByID) == 0 {
		s.log.Warn("AI scoring returned no usable scores, using popularity ranking")
		return fallbackRanking(base, limit), StrategyPopularity, "no usable scores"
	}

	type scored struct {
		item      *types.ClothingItem
		score     float64
		baseIndex int
	}
	rows := make([]scored, 0, len(base))
	for i, item := range base {
		sc, ok := scoreByID[item.ID]
		if !ok {
			continue
		}
		rows = append(rows, scored{item: item, score: sc, baseIndex: i})
	}
	if len(rows) == 0 {
		return fallbackRanking(base, limit), StrategyPopularity, "no scored candidates"
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].baseIndex < rows[j].baseIndex
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]RankedItem, 0, len(rows))
	for _, row := range rows {
		sc := row.score
		out = append(out, RankedItem{Item: row.item, Score: &sc})
	}
	return out, StrategyAIScore, ""
}

// resolvePrevBias prefers the latest succeeded adaptive bias; 50 is neutral.
func (s *recommendationService) resolvePrevBias(ctx context.Context, sessionKey string) int {
	bias, err := s.adaptiveRepo.GetLatestSucceededBias(ctx, nil, sessionKey)
	if err != nil {
		s.log.Warn("Adaptive bias lookup failed, using neutral bias", "error", err)
		return 50
	}
	if bias == nil {
		return 50
	}
	return *bias
}

func (s *recommendationService) emitOutcome(ctx context.Context, sessionKey string, rc *recoContext, strategy, reason string, itemCount int, latency time.Duration) {
	eventType := types.EventRecoGenerated
	payload := map[string]interface{}{
		"zone":       rc.zone,
		"strategy":   strategy,
		"itemCount":  itemCount,
		"latency_ms": latency.Milliseconds(),
	}
	if strategy == StrategyPopularity {
		eventType = types.EventRecoFallback
		payload["reason"] = reason
	}
	_ = s.events.Emit(ctx, sessionKey, rc.recoID, types.FunnelStepShown, eventType, payload)
}

func scoreItemsFrom(base []*types.ClothingItem) []comfortai.ScoreItem {
	items := make([]comfortai.ScoreItem, 0, len(base))
	for _, item := range base {
		items = append(items, comfortai.ScoreItem{
			ClothingID:     item.ID,
			Thickness:      item.ThicknessLevel,
			CottonRatio:    intOrZero(item.CottonPct),
			PolyesterRatio: intOrZero(item.PolyesterPct),
			EtcFiberRatio:  intOrZero(item.EtcFiberPct),
		})
	}
	return items
}

func fallbackRanking(base []*types.ClothingItem, limit int) []RankedItem {
	if limit > 0 && len(base) > limit {
		base = base[:limit]
	}
	out := make([]RankedItem, 0, len(base))
	for _, item := range base {
		out = append(out, RankedItem{Item: item})
	}
	return out
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
