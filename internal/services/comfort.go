package services

import (
	"github.com/teamwear/weatherfit-backend/internal/types"
)

// Comfort zone policy constants. Thresholds and the derived season /
// thickness tables are fixed policy, not computed.

// ResolveZone maps a rounded temperature to its comfort zone. Total over
// the whole input range.
func ResolveZone(temp int) types.ComfortZone {
	switch {
	case temp < 5:
		return types.ZoneVeryCold
	case temp < 12:
		return types.ZoneCold
	case temp < 20:
		return types.ZoneMild
	case temp < 27:
		return types.ZoneWarm
	default:
		return types.ZoneHot
	}
}

// ZoneSeasons returns the season-candidate set for a zone.
func ZoneSeasons(zone types.ComfortZone) []types.SeasonType {
	switch zone {
	case types.ZoneVeryCold, types.ZoneCold:
		return []types.SeasonType{types.SeasonWinter, types.SeasonAutumn}
	case types.ZoneMild:
		return []types.SeasonType{types.SeasonSpring, types.SeasonAutumn}
	case types.ZoneWarm:
		return []types.SeasonType{types.SeasonSpring, types.SeasonAutumn, types.SeasonSummer}
	case types.ZoneHot:
		return []types.SeasonType{types.SeasonSummer}
	default:
		return nil
	}
}

// ZoneAllowedThickness returns the thickness levels wearable in a zone.
func ZoneAllowedThickness(zone types.ComfortZone) []types.ThicknessLevel {
	switch zone {
	case types.ZoneVeryCold, types.ZoneCold:
		return []types.ThicknessLevel{types.ThicknessThick, types.ThicknessMedium}
	case types.ZoneMild:
		return []types.ThicknessLevel{types.ThicknessMedium, types.ThicknessThin}
	case types.ZoneWarm, types.ZoneHot:
		return []types.ThicknessLevel{types.ThicknessThin}
	default:
		return nil
	}
}

// ZoneOuterCompanionCategories returns the categories that must be paired
// with an OUTER garment in a zone. Empty means no outer requirement.
func ZoneOuterCompanionCategories(zone types.ComfortZone) []types.ClothingCategory {
	switch zone {
	case types.ZoneVeryCold, types.ZoneCold:
		return []types.ClothingCategory{types.CategoryTop, types.CategoryOnePiece}
	case types.ZoneMild, types.ZoneWarm, types.ZoneHot:
		return nil
	default:
		return nil
	}
}

// SeasonMatches reports whether an item's season tags overlap the zone's
// season set. An untagged item is all-season and matches everything.
func SeasonMatches(itemSeasons []types.SeasonType, zoneSeasons []types.SeasonType) bool {
	if len(itemSeasons) == 0 {
		return true
	}
	for _, s := range itemSeasons {
		for _, z := range zoneSeasons {
			if s == z {
				return true
			}
		}
	}
	return false
}
