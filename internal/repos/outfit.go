package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

type OutfitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, outfit *types.OutfitOfDay) error
	GetBySessionAndDate(ctx context.Context, tx *gorm.DB, sessionKey string, date time.Time) (*types.OutfitOfDay, error)
	ReplaceItems(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, items []types.OutfitItem) error
	UpdateFeedback(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, rating int) error
	UpdateStrategy(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, strategy string) error
	ListBySessionAndRange(ctx context.Context, tx *gorm.DB, sessionKey string, from, toExclusive time.Time) ([]*types.OutfitOfDay, error)
	ListWithFeedback(ctx context.Context, tx *gorm.DB, sessionKey string, from, toExclusive time.Time) ([]*types.OutfitOfDay, error)
}

type outfitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutfitRepo(db *gorm.DB, baseLog *logger.Logger) OutfitRepo {
	return &outfitRepo{db: db, log: baseLog.With("repo", "OutfitRepo")}
}

func (r *outfitRepo) Create(ctx context.Context, tx *gorm.DB, outfit *types.OutfitOfDay) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(outfit).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *outfitRepo) GetBySessionAndDate(ctx context.Context, tx *gorm.DB, sessionKey string, date time.Time) (*types.OutfitOfDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.OutfitOfDay
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("session_key = ? AND outfit_date = ?", sessionKey, date).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ReplaceItems swaps the outfit's item list wholesale. Delete-then-insert in
// one transaction avoids unique (outfit_id, sort_order) collisions.
func (r *outfitRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, items []types.OutfitItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.Where("outfit_id = ?", outfitID).Delete(&types.OutfitItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OutfitID = outfitID
		}
		return inner.Create(&items).Error
	})
}

func (r *outfitRepo) UpdateFeedback(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, rating int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.OutfitOfDay{}).
		Where("id = ?", outfitID).
		Updates(map[string]interface{}{"feedback_rating": rating, "updated_at": gorm.Expr("now()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *outfitRepo) UpdateStrategy(ctx context.Context, tx *gorm.DB, outfitID uuid.UUID, strategy string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.OutfitOfDay{}).
		Where("id = ?", outfitID).
		Updates(map[string]interface{}{"reco_strategy": strategy, "updated_at": gorm.Expr("now()")}).Error
}

func (r *outfitRepo) ListBySessionAndRange(ctx context.Context, tx *gorm.DB, sessionKey string, from, toExclusive time.Time) ([]*types.OutfitOfDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.OutfitOfDay
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("session_key = ? AND outfit_date >= ? AND outfit_date < ?", sessionKey, from, toExclusive).
		Order("outfit_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *outfitRepo) ListWithFeedback(ctx context.Context, tx *gorm.DB, sessionKey string, from, toExclusive time.Time) ([]*types.OutfitOfDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.OutfitOfDay
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("session_key = ? AND outfit_date >= ? AND outfit_date < ? AND feedback_rating IS NOT NULL", sessionKey, from, toExclusive).
		Order("outfit_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
