package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

const (
	minOutfitItems = 2
	maxOutfitItems = 3
)

// OutfitSnapshot is the persisted outfit-of-day as returned to the caller.
type OutfitSnapshot struct {
	Date           time.Time          `json:"date"`
	Items          []OutfitItemResult `json:"items"`
	FeedbackRating *int               `json:"feedbackRating,omitempty"`
	RecoStrategy   string             `json:"recoStrategy,omitempty"`
}

type OutfitItemResult struct {
	ClothingID int64 `json:"clothingId"`
	SortOrder  int   `json:"sortOrder"`
}

// OutfitService owns the SELECTED and FEEDBACK_GIVEN funnel states.
type OutfitService interface {
	// SelectToday validates and upserts the day's outfit, replacing any
	// prior item list, and bumps each garment's popularity counter.
	SelectToday(ctx context.Context, sessionKey string, clothingIDs []int64, strategy string) (*OutfitSnapshot, error)
	GetToday(ctx context.Context, sessionKey string) (*OutfitSnapshot, error)
	// SubmitTodayFeedback requires today's outfit to exist. A repeat
	// submission overwrites the prior rating.
	SubmitTodayFeedback(ctx context.Context, sessionKey string, rating int) (*OutfitSnapshot, error)
	MonthlyHistory(ctx context.Context, sessionKey string, year, month int) ([]OutfitSnapshot, error)
}

type outfitService struct {
	db            *gorm.DB
	log           *logger.Logger
	outfitRepo    repos.OutfitRepo
	clothingRepo  repos.ClothingItemRepo
	checklistRepo repos.ChecklistRepo
	events        EventLogService
}

func NewOutfitService(db *gorm.DB, log *logger.Logger, outfitRepo repos.OutfitRepo, clothingRepo repos.ClothingItemRepo, checklistRepo repos.ChecklistRepo, events EventLogService) OutfitService {
	return &outfitService{
		db:            db,
		log:           log.With("service", "OutfitService"),
		outfitRepo:    outfitRepo,
		clothingRepo:  clothingRepo,
		checklistRepo: checklistRepo,
		events:        events,
	}
}

// normalizeSelection de-duplicates (first occurrence wins) and enforces the
// 2-3 item policy. Order of first occurrence is the final sort order.
func normalizeSelection(clothingIDs []int64) ([]int64, error) {
	if len(clothingIDs) == 0 {
		return nil, fmt.Errorf("%w: items are required", apperr.ErrInvalidArgument)
	}
	seen := make(map[int64]bool, len(clothingIDs))
	cleaned := make([]int64, 0, len(clothingIDs))
	for _, id := range clothingIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: clothingId must be positive", apperr.ErrInvalidArgument)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		cleaned = append(cleaned, id)
	}
	if len(cleaned) < minOutfitItems {
		return nil, fmt.Errorf("%w: at least %d distinct items required", apperr.ErrInvalidArgument, minOutfitItems)
	}
	if len(cleaned) > maxOutfitItems {
		return nil, fmt.Errorf("%w: at most %d items allowed", apperr.ErrInvalidArgument, maxOutfitItems)
	}
	return cleaned, nil
}

func (s *outfitService) SelectToday(ctx context.Context, sessionKey string, clothingIDs []int64, strategy string) (*OutfitSnapshot, error) {
	cleaned, err := normalizeSelection(clothingIDs)
	if err != nil {
		return nil, err
	}

	today := utils.TodayKST()

	outfit, err := s.outfitRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
	if errors.Is(err, apperr.ErrNotFound) {
		outfit = &types.OutfitOfDay{SessionKey: sessionKey, OutfitDate: today, RecoStrategy: strategy}
		if createErr := s.outfitRepo.Create(ctx, nil, outfit); createErr != nil {
			if !errors.Is(createErr, apperr.ErrDuplicate) {
				return nil, createErr
			}
			// Same-day race: reuse the winner's row.
			outfit, err = s.outfitRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	items := make([]types.OutfitItem, 0, len(cleaned))
	for i, id := range cleaned {
		items = append(items, types.OutfitItem{ClothingID: id, SortOrder: i + 1})
	}
	if err := s.outfitRepo.ReplaceItems(ctx, nil, outfit.ID, items); err != nil {
		return nil, err
	}
	if strategy != "" && strategy != outfit.RecoStrategy {
		if err := s.outfitRepo.UpdateStrategy(ctx, nil, outfit.ID, strategy); err != nil {
			return nil, err
		}
	}

	for _, id := range cleaned {
		if err := s.clothingRepo.IncrementSelected(ctx, nil, id); err != nil {
			s.log.Warn("Popularity increment failed", "clothing_id", id, "error", err)
		}
	}

	recoID := s.todayRecommendationID(ctx, sessionKey, today)
	_ = s.events.Emit(ctx, sessionKey, recoID, types.FunnelStepSelected, types.EventRecoSelected, map[string]interface{}{
		"clothingIds": cleaned,
		"strategy":    strategy,
		"date":        today.Format("2006-01-02"),
	})

	saved, err := s.outfitRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
	if err != nil {
		return nil, err
	}
	return snapshotFromOutfit(saved), nil
}

func (s *outfitService) GetToday(ctx context.Context, sessionKey string) (*OutfitSnapshot, error) {
	row, err := s.outfitRepo.GetBySessionAndDate(ctx, nil, sessionKey, utils.TodayKST())
	if err != nil {
		return nil, err
	}
	return snapshotFromOutfit(row), nil
}

func (s *outfitService) SubmitTodayFeedback(ctx context.Context, sessionKey string, rating int) (*OutfitSnapshot, error) {
	if rating < -1 || rating > 1 {
		return nil, fmt.Errorf("%w: rating must be -1, 0 or 1", apperr.ErrInvalidArgument)
	}

	today := utils.TodayKST()
	outfit, err := s.outfitRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
	if err != nil {
		return nil, err
	}

	if err := s.outfitRepo.UpdateFeedback(ctx, nil, outfit.ID, rating); err != nil {
		return nil, err
	}

	recoID := s.todayRecommendationID(ctx, sessionKey, today)
	_ = s.events.Emit(ctx, sessionKey, recoID, types.FunnelStepFeedback, types.EventFeedbackSubmitted, map[string]interface{}{
		"rating": rating,
		"date":   today.Format("2006-01-02"),
	})

	saved, err := s.outfitRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
	if err != nil {
		return nil, err
	}
	return snapshotFromOutfit(saved), nil
}

func (s *outfitService) MonthlyHistory(ctx context.Context, sessionKey string, year, month int) ([]OutfitSnapshot, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year is invalid", apperr.ErrInvalidArgument)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month is invalid", apperr.ErrInvalidArgument)
	}
	from, toExclusive := utils.MonthRangeKST(year, month)
	rows, err := s.outfitRepo.ListBySessionAndRange(ctx, nil, sessionKey, from, toExclusive)
	if err != nil {
		return nil, err
	}
	out := make([]OutfitSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, *snapshotFromOutfit(row))
	}
	return out, nil
}

// todayRecommendationID threads the checklist-minted id through later funnel
// events; nil when no checklist was submitted today.
func (s *outfitService) todayRecommendationID(ctx context.Context, sessionKey string, today time.Time) *uuid.UUID {
	row, err := s.checklistRepo.GetBySessionAndDate(ctx, nil, sessionKey, today)
	if err != nil {
		return nil
	}
	id := row.RecommendationID
	return &id
}

func snapshotFromOutfit(row *types.OutfitOfDay) *OutfitSnapshot {
	items := make([]OutfitItemResult, 0, len(row.Items))
	for _, it := range row.Items {
		items = append(items, OutfitItemResult{ClothingID: it.ClothingID, SortOrder: it.SortOrder})
	}
	return &OutfitSnapshot{
		Date:           row.OutfitDate,
		Items:          items,
		FeedbackRating: row.FeedbackRating,
		RecoStrategy:   row.RecoStrategy,
	}
}
