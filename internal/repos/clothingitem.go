package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

// ClothingSearchCondition narrows catalog candidates. Temperature bounds are
// inclusive on both ends; a nil field means "do not filter on this".
type ClothingSearchCondition struct {
	Category  *types.ClothingCategory
	Temp      *int
	UsageIn   []types.UsageType
	Thickness *types.ThicknessLevel
	Limit     int
}

type ClothingItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.ClothingItem) error
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.ClothingItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.ClothingItem, error)
	SearchCandidateIDs(ctx context.Context, tx *gorm.DB, cond ClothingSearchCondition) ([]int64, error)
	Update(ctx context.Context, tx *gorm.DB, item *types.ClothingItem) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ClothingItem, error)
	IncrementSelected(ctx context.Context, tx *gorm.DB, id int64) error
}

type clothingItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClothingItemRepo(db *gorm.DB, baseLog *logger.Logger) ClothingItemRepo {
	return &clothingItemRepo{db: db, log: baseLog.With("repo", "ClothingItemRepo")}
}

func (r *clothingItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.ClothingItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(item).Error
}

func (r *clothingItemRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.ClothingItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var item types.ClothingItem
	if err := transaction.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *clothingItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.ClothingItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ClothingItem
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// candidateSearchQuery builds the candidate filter. Temperature bounds are
// inclusive; a NULL bound is unconstrained on that side.
func candidateSearchQuery(tx *gorm.DB, cond ClothingSearchCondition) *gorm.DB {
	q := tx.Model(&types.ClothingItem{})
	if cond.Category != nil {
		q = q.Where("category = ?", *cond.Category)
	}
	if cond.Temp != nil {
		q = q.Where("(suitable_min_temp IS NULL OR suitable_min_temp <= ?)", *cond.Temp)
		q = q.Where("(suitable_max_temp IS NULL OR suitable_max_temp >= ?)", *cond.Temp)
	}
	if len(cond.UsageIn) > 0 {
		q = q.Where("usage_type IN ?", cond.UsageIn)
	}
	if cond.Thickness != nil {
		q = q.Where("thickness_level = ?", *cond.Thickness)
	}
	q = q.Order("selected_count DESC").Order("id DESC")
	if cond.Limit > 0 {
		q = q.Limit(cond.Limit)
	}
	return q
}

func (r *clothingItemRepo) SearchCandidateIDs(ctx context.Context, tx *gorm.DB, cond ClothingSearchCondition) ([]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []int64
	if err := candidateSearchQuery(transaction.WithContext(ctx), cond).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *clothingItemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.ClothingItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(item).Error
}

func (r *clothingItemRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).Delete(&types.ClothingItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *clothingItemRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ClothingItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ClothingItem
	q := transaction.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func incrementSelectedUpdate(tx *gorm.DB, id int64) *gorm.DB {
	return tx.Model(&types.ClothingItem{}).
		Where("id = ?", id).
		UpdateColumn("selected_count", gorm.Expr("selected_count + 1"))
}

// IncrementSelected bumps the popularity counter with a single conditional
// UPDATE so concurrent selections never lose increments.
func (r *clothingItemRepo) IncrementSelected(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := incrementSelectedUpdate(transaction.WithContext(ctx), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
