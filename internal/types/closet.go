package types

import "time"

// Closet is a session's garment collection, created lazily on first use.
type Closet struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionKey string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_closet_session_key" json:"session_key"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Closet) TableName() string { return "closet" }

// ClosetItem links a catalog garment into a closet. Insertion order is the
// closet's display order.
type ClosetItem struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClosetID       int64     `gorm:"not null;uniqueIndex:uq_closet_item,priority:1" json:"closet_id"`
	ClothingItemID int64     `gorm:"not null;uniqueIndex:uq_closet_item,priority:2" json:"clothing_item_id"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ClosetItem) TableName() string { return "closet_item" }
