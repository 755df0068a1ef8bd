package types

import (
	"time"

	"gorm.io/datatypes"
)

// ClothingItem is a catalog garment. The engine only reads these; writes go
// through the catalog CRUD surface.
type ClothingItem struct {
	ID             int64                         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string                        `gorm:"not null" json:"name"`
	Category       ClothingCategory              `gorm:"type:varchar(20);not null;index" json:"category"`
	ThicknessLevel ThicknessLevel                `gorm:"type:varchar(20);not null" json:"thickness_level"`
	UsageType      UsageType                     `gorm:"type:varchar(20);not null;default:'BOTH'" json:"usage_type"`
	Seasons        datatypes.JSONSlice[SeasonType] `gorm:"type:jsonb" json:"seasons"`

	CottonPct    *int `json:"cotton_pct,omitempty"`
	PolyesterPct *int `json:"polyester_pct,omitempty"`
	EtcFiberPct  *int `json:"etc_fiber_pct,omitempty"`

	// nil bound means unconstrained on that side.
	SuitableMinTemp *int `json:"suitable_min_temp,omitempty"`
	SuitableMaxTemp *int `json:"suitable_max_temp,omitempty"`

	Color    string `gorm:"type:varchar(30)" json:"color,omitempty"`
	StyleTag string `gorm:"type:varchar(50)" json:"style_tag,omitempty"`
	ImageURL string `gorm:"type:varchar(255)" json:"image_url,omitempty"`

	SelectedCount int `gorm:"not null;default:0" json:"selected_count"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ClothingItem) TableName() string { return "clothing_item" }
