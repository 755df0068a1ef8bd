package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdaptiveRun is the audit row for one adaptive-bias scoring attempt. A row
// is written REQUESTED before the upstream call and flipped to SUCCEEDED or
// FAILED afterwards; the newest row per (session, year, month) is the
// authoritative monthly result.
type AdaptiveRun struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FeedbackID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"feedback_id"`
	SessionKey string    `gorm:"type:varchar(64);not null;index:idx_adaptive_run_session_period,priority:1" json:"session_key"`
	Year       int       `gorm:"not null;index:idx_adaptive_run_session_period,priority:2" json:"year"`
	Month      int       `gorm:"not null;index:idx_adaptive_run_session_period,priority:3" json:"month"`

	RangeFrom time.Time `gorm:"type:date;not null" json:"range_from"`
	RangeTo   time.Time `gorm:"type:date;not null" json:"range_to"`

	Status   AdaptiveRunStatus `gorm:"type:varchar(20);not null" json:"status"`
	PrevBias int               `gorm:"not null" json:"prev_bias"`

	RequestModels   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"request_models"`
	RequestPayload  datatypes.JSON              `gorm:"type:jsonb" json:"request_payload,omitempty"`
	ResponsePayload datatypes.JSON              `gorm:"type:jsonb" json:"response_payload,omitempty"`
	ErrorPayload    datatypes.JSON              `gorm:"type:jsonb" json:"error_payload,omitempty"`

	// Bias returned by the adaptive service on success, 0-100.
	UserBias *int `json:"user_bias,omitempty"`

	LatencyMs   *int64     `json:"latency_ms,omitempty"`
	RequestedAt time.Time  `gorm:"not null;default:now()" json:"requested_at"`
	SucceededAt *time.Time `json:"succeeded_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

func (AdaptiveRun) TableName() string { return "adaptive_run" }
