package types

// ClothingCategory is the catalog-level garment category.
type ClothingCategory string

const (
	CategoryTop      ClothingCategory = "TOP"
	CategoryBottom   ClothingCategory = "BOTTOM"
	CategoryOuter    ClothingCategory = "OUTER"
	CategoryOnePiece ClothingCategory = "ONE_PIECE"
)

func (c ClothingCategory) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryOuter, CategoryOnePiece:
		return true
	}
	return false
}

// TodayCategories is the fixed category set returned by the /today endpoint.
var TodayCategories = []ClothingCategory{CategoryTop, CategoryBottom, CategoryOuter, CategoryOnePiece}

// ThicknessLevel is the garment thickness tag.
type ThicknessLevel string

const (
	ThicknessThin   ThicknessLevel = "THIN"
	ThicknessMedium ThicknessLevel = "MEDIUM"
	ThicknessThick  ThicknessLevel = "THICK"
)

func (t ThicknessLevel) Valid() bool {
	switch t {
	case ThicknessThin, ThicknessMedium, ThicknessThick:
		return true
	}
	return false
}

// SeasonType tags the seasons a garment suits. An item with no season tags
// is treated as all-season.
type SeasonType string

const (
	SeasonSpring SeasonType = "SPRING"
	SeasonSummer SeasonType = "SUMMER"
	SeasonAutumn SeasonType = "AUTUMN"
	SeasonWinter SeasonType = "WINTER"
)

// UsageType marks where a garment is worn. Searching for INDOOR or OUTDOOR
// also returns BOTH-tagged items; searching for BOTH returns only BOTH.
type UsageType string

const (
	UsageIndoor  UsageType = "INDOOR"
	UsageOutdoor UsageType = "OUTDOOR"
	UsageBoth    UsageType = "BOTH"
)

func (u UsageType) Valid() bool {
	switch u {
	case UsageIndoor, UsageOutdoor, UsageBoth:
		return true
	}
	return false
}

// ComfortZone is the discrete temperature band driving thickness and season
// eligibility.
type ComfortZone string

const (
	ZoneVeryCold ComfortZone = "VERY_COLD"
	ZoneCold     ComfortZone = "COLD"
	ZoneMild     ComfortZone = "MILD"
	ZoneWarm     ComfortZone = "WARM"
	ZoneHot      ComfortZone = "HOT"
)

// AdaptiveRunStatus is the audit state of one adaptive scoring attempt.
type AdaptiveRunStatus string

const (
	RunRequested AdaptiveRunStatus = "REQUESTED"
	RunSucceeded AdaptiveRunStatus = "SUCCEEDED"
	RunFailed    AdaptiveRunStatus = "FAILED"
)

// Funnel steps shared by every recommendation event of one day.
const (
	FunnelStepChecklist = "CHECKLIST"
	FunnelStepShown     = "SHOWN"
	FunnelStepSelected  = "SELECTED"
	FunnelStepFeedback  = "FEEDBACK"
	FunnelStepAdaptive  = "FEEDBACK_ADAPTIVE"
)

// Recommendation event types.
const (
	EventChecklistSubmitted = "CHECKLIST_SUBMITTED"
	EventRecoGenerated      = "RECO_GENERATED"
	EventRecoFallback       = "RECO_FALLBACK"
	EventRecoSelected       = "RECO_SELECTED"
	EventFeedbackSubmitted  = "RECO_FEEDBACK_SUBMITTED"
	EventAdaptiveRequested  = "FEEDBACK_ADAPTIVE_REQUESTED"
	EventAdaptiveSucceeded  = "FEEDBACK_ADAPTIVE_SUCCEEDED"
	EventAdaptiveFailed     = "FEEDBACK_ADAPTIVE_FAILED"
)
