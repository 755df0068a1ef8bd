package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

// CandidateFilter narrows the catalog search feeding the scorer.
type CandidateFilter struct {
	Category  *types.ClothingCategory
	Usage     *types.UsageType
	Thickness *types.ThicknessLevel
	Limit     int
}

// CandidateSelector pulls temperature-eligible catalog items, widest first;
// zone and season rules are the scorer's job.
type CandidateSelector interface {
	Select(ctx context.Context, temp int, filter CandidateFilter) ([]*types.ClothingItem, error)
}

type candidateSelector struct {
	db           *gorm.DB
	log          *logger.Logger
	clothingRepo repos.ClothingItemRepo
}

func NewCandidateSelector(db *gorm.DB, log *logger.Logger, clothingRepo repos.ClothingItemRepo) CandidateSelector {
	return &candidateSelector{
		db:           db,
		log:          log.With("service", "CandidateSelector"),
		clothingRepo: clothingRepo,
	}
}

// UsageSearchSet expands a requested usage into the tags that satisfy it:
// INDOOR and OUTDOOR both accept BOTH-tagged items, BOTH accepts only BOTH.
func UsageSearchSet(usage types.UsageType) []types.UsageType {
	if usage == types.UsageBoth {
		return []types.UsageType{types.UsageBoth}
	}
	return []types.UsageType{usage, types.UsageBoth}
}

func (s *candidateSelector) Select(ctx context.Context, temp int, filter CandidateFilter) ([]*types.ClothingItem, error) {
	cond := repos.ClothingSearchCondition{
		Category:  filter.Category,
		Temp:      &temp,
		Thickness: filter.Thickness,
		Limit:     filter.Limit,
	}
	if filter.Usage != nil {
		cond.UsageIn = UsageSearchSet(*filter.Usage)
	}

	ids, err := s.clothingRepo.SearchCandidateIDs(ctx, nil, cond)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.clothingRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}

	// Preserve the search ordering; Find does not guarantee it.
	byID := make(map[int64]*types.ClothingItem, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]*types.ClothingItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}
