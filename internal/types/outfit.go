package types

import (
	"time"

	"github.com/google/uuid"
)

// OutfitOfDay is the outfit a session picked for one KST day. Saving again
// replaces the whole item list; the (session_key, outfit_date) unique index
// keeps one row per day.
type OutfitOfDay struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionKey string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_outfit_session_date,priority:1" json:"session_key"`
	OutfitDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_outfit_session_date,priority:2" json:"outfit_date"`
	// -1 bad, 0 unknown, 1 good; nil until feedback arrives.
	FeedbackRating *int         `json:"feedback_rating,omitempty"`
	RecoStrategy   string       `gorm:"type:varchar(30)" json:"reco_strategy,omitempty"`
	Items          []OutfitItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:OutfitID;references:ID" json:"items"`
	CreatedAt      time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (OutfitOfDay) TableName() string { return "outfit_of_day" }

// OutfitItem is one garment slot of an OutfitOfDay. SortOrder is always
// reassigned 1..N on save.
type OutfitItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OutfitID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_outfit_item_sort,priority:1" json:"outfit_id"`
	ClothingID int64     `gorm:"not null" json:"clothing_id"`
	SortOrder  int       `gorm:"not null;uniqueIndex:uq_outfit_item_sort,priority:2" json:"sort_order"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (OutfitItem) TableName() string { return "outfit_item" }
