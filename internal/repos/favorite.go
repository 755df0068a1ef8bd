package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

type FavoriteRepo interface {
	Add(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) error
	Remove(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) error
	ListClothingIDs(ctx context.Context, tx *gorm.DB, sessionKey string) ([]int64, error)
	// FilterClothingIDs returns the subset of ids this session has favorited.
	FilterClothingIDs(ctx context.Context, tx *gorm.DB, sessionKey string, clothingIDs []int64) ([]int64, error)
	Exists(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) (bool, error)
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return &favoriteRepo{db: db, log: baseLog.With("repo", "FavoriteRepo")}
}

func (r *favoriteRepo) Add(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Create(&types.Favorite{SessionKey: sessionKey, ClothingID: clothingID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *favoriteRepo) Remove(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("session_key = ? AND clothing_id = ?", sessionKey, clothingID).
		Delete(&types.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *favoriteRepo) ListClothingIDs(ctx context.Context, tx *gorm.DB, sessionKey string) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("session_key = ?", sessionKey).
		Order("id ASC").
		Pluck("clothing_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *favoriteRepo) FilterClothingIDs(ctx context.Context, tx *gorm.DB, sessionKey string, clothingIDs []int64) ([]int64, error) {
	if len(clothingIDs) == 0 {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("session_key = ? AND clothing_id IN ?", sessionKey, clothingIDs).
		Pluck("clothing_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *favoriteRepo) Exists(ctx context.Context, tx *gorm.DB, sessionKey string, clothingID int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("session_key = ? AND clothing_id = ?", sessionKey, clothingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
