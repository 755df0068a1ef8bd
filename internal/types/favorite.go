package types

import "time"

// Favorite marks one garment as favorited by one session.
type Favorite struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionKey string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_favorite_session_clothing,priority:1" json:"session_key"`
	ClothingID int64     `gorm:"not null;uniqueIndex:uq_favorite_session_clothing,priority:2" json:"clothing_id"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Favorite) TableName() string { return "favorite" }
