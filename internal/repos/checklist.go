package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

type ChecklistRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ChecklistSubmission) error
	GetBySessionAndDate(ctx context.Context, tx *gorm.DB, sessionKey string, date time.Time) (*types.ChecklistSubmission, error)
}

type checklistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChecklistRepo(db *gorm.DB, baseLog *logger.Logger) ChecklistRepo {
	return &checklistRepo{db: db, log: baseLog.With("repo", "ChecklistRepo")}
}

// Create persists the day's checklist row. A losing concurrent writer gets
// apperr.ErrDuplicate from the (session_key, checklist_date) unique index
// and must read back the winner's row.
func (r *checklistRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ChecklistSubmission) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *checklistRepo) GetBySessionAndDate(ctx context.Context, tx *gorm.DB, sessionKey string, date time.Time) (*types.ChecklistSubmission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.ChecklistSubmission
	if err := transaction.WithContext(ctx).
		Where("session_key = ? AND checklist_date = ?", sessionKey, date).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}
