package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecommendationEvent is one append-only funnel event. The engine only
// writes these; reconstruction of a day's funnel by recommendation_id is an
// analytics concern.
type RecommendationEvent struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionKey       string         `gorm:"type:varchar(64);not null;index" json:"session_key"`
	RecommendationID *uuid.UUID     `gorm:"type:uuid;index" json:"recommendation_id,omitempty"`
	FunnelStep       string         `gorm:"type:varchar(30);not null" json:"funnel_step"`
	EventType        string         `gorm:"type:varchar(40);not null;index" json:"event_type"`
	Payload          datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (RecommendationEvent) TableName() string { return "recommendation_event" }
