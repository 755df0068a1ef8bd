package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

type ClosetRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, sessionKey string) (*types.Closet, error)
	AddItem(ctx context.Context, tx *gorm.DB, closetID, clothingID int64) error
	RemoveItem(ctx context.Context, tx *gorm.DB, closetID, clothingID int64) error
	ListClothingIDs(ctx context.Context, tx *gorm.DB, closetID int64, category *types.ClothingCategory, limit int) ([]int64, error)
}

type closetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClosetRepo(db *gorm.DB, baseLog *logger.Logger) ClosetRepo {
	return &closetRepo{db: db, log: baseLog.With("repo", "ClosetRepo")}
}

// GetOrCreate registers the session's closet on first use. The insert uses
// ON CONFLICT DO NOTHING so a concurrent first use still resolves to one row.
func (r *closetRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, sessionKey string) (*types.Closet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.Closet
	err := transaction.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoNothing: true,
		}).
		Create(&types.Closet{SessionKey: sessionKey}).Error; err != nil {
		return nil, err
	}

	if err := transaction.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *closetRepo) AddItem(ctx context.Context, tx *gorm.DB, closetID, clothingID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Create(&types.ClosetItem{ClosetID: closetID, ClothingItemID: clothingID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *closetRepo) RemoveItem(ctx context.Context, tx *gorm.DB, closetID, clothingID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("closet_id = ? AND clothing_item_id = ?", closetID, clothingID).
		Delete(&types.ClosetItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *closetRepo) ListClothingIDs(ctx context.Context, tx *gorm.DB, closetID int64, category *types.ClothingCategory, limit int) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.ClosetItem{}).
		Where("closet_item.closet_id = ?", closetID)
	if category != nil {
		q = q.Joins("JOIN clothing_item ON clothing_item.id = closet_item.clothing_item_id").
			Where("clothing_item.category = ?", *category)
	}
	q = q.Order("closet_item.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ids []int64
	if err := q.Pluck("closet_item.clothing_item_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
