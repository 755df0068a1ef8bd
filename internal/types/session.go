package types

import (
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous device session. The key is opaque; it is the sole
// partitioning key for all per-day state.
type Session struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionKey string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"session_key"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	LastSeenAt time.Time `gorm:"not null;default:now()" json:"last_seen_at"`
}

func (Session) TableName() string { return "session" }
