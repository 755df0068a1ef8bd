package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChecklistSubmission is the once-per-day checklist row. The unique index on
// (session_key, checklist_date) is what makes checklist submission
// idempotent: the first writer mints the recommendationId, later writers
// read it back.
type ChecklistSubmission struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionKey       string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_checklist_session_date,priority:1" json:"session_key"`
	ChecklistDate    time.Time      `gorm:"type:date;not null;uniqueIndex:uq_checklist_session_date,priority:2" json:"checklist_date"`
	RecommendationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"recommendation_id"`
	UsageType        UsageType      `gorm:"type:varchar(20);not null;default:'BOTH'" json:"usage_type"`
	ThicknessLevel   ThicknessLevel `gorm:"type:varchar(20);not null" json:"thickness_level"`
	// Yesterday's comfort verdict from the checklist form: -1 cold, 0 fine, 1 hot.
	YesterdayFeedback *int           `json:"yesterday_feedback,omitempty"`
	Payload           datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ChecklistSubmission) TableName() string { return "checklist_submission" }
