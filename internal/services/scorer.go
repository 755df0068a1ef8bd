package services

import (
	"sort"

	"github.com/teamwear/weatherfit-backend/internal/types"
)

// ComfortScorer produces the deterministic popularity ranking. This ordering
// is also the fallback whenever the AI scoring path fails, so it must stay
// total: popularity descending, ties broken by id descending.
type ComfortScorer struct{}

func NewComfortScorer() *ComfortScorer { return &ComfortScorer{} }

// Eligible applies the zone rules to one candidate against its batch:
// thickness must be allowed in the zone, seasons must overlap (untagged
// items always pass), and in outer-requiring zones a TOP/ONE_PIECE candidate
// survives only if the batch offers an OUTER companion.
func (s *ComfortScorer) Eligible(zone types.ComfortZone, item *types.ClothingItem, batch []*types.ClothingItem) bool {
	allowed := ZoneAllowedThickness(zone)
	ok := false
	for _, t := range allowed {
		if item.ThicknessLevel == t {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}

	if !SeasonMatches(item.Seasons, ZoneSeasons(zone)) {
		return false
	}

	for _, needsOuter := range ZoneOuterCompanionCategories(zone) {
		if item.Category != needsOuter {
			continue
		}
		if !batchHasOuter(zone, batch) {
			return false
		}
	}
	return true
}

func batchHasOuter(zone types.ComfortZone, batch []*types.ClothingItem) bool {
	for _, other := range batch {
		if other.Category != types.CategoryOuter {
			continue
		}
		if !SeasonMatches(other.Seasons, ZoneSeasons(zone)) {
			continue
		}
		for _, t := range ZoneAllowedThickness(zone) {
			if other.ThicknessLevel == t {
				return true
			}
		}
	}
	return false
}

// Rank filters candidates through the zone rules and returns the top items
// by popularity descending, id descending, truncated to limit. limit <= 0
// means no truncation.
func (s *ComfortScorer) Rank(zone types.ComfortZone, candidates []*types.ClothingItem, limit int) []*types.ClothingItem {
	eligible := make([]*types.ClothingItem, 0, len(candidates))
	for _, item := range candidates {
		if s.Eligible(zone, item, candidates) {
			eligible = append(eligible, item)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].SelectedCount != eligible[j].SelectedCount {
			return eligible[i].SelectedCount > eligible[j].SelectedCount
		}
		return eligible[i].ID > eligible[j].ID
	})

	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible
}
