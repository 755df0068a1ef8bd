package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

type AdaptiveRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.AdaptiveRun) error
	MarkSucceeded(ctx context.Context, tx *gorm.DB, feedbackID uuid.UUID, latencyMs int64, userBias int, response datatypes.JSON) error
	MarkFailed(ctx context.Context, tx *gorm.DB, feedbackID uuid.UUID, errPayload datatypes.JSON) error
	GetLatestByPeriod(ctx context.Context, tx *gorm.DB, sessionKey string, year, month int) (*types.AdaptiveRun, error)
	GetLatestSucceededBias(ctx context.Context, tx *gorm.DB, sessionKey string) (*int, error)
}

type adaptiveRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdaptiveRunRepo(db *gorm.DB, baseLog *logger.Logger) AdaptiveRunRepo {
	return &adaptiveRunRepo{db: db, log: baseLog.With("repo", "AdaptiveRunRepo")}
}

func (r *adaptiveRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.AdaptiveRun) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(run).Error
}

func (r *adaptiveRunRepo) MarkSucceeded(ctx context.Context, tx *gorm.DB, feedbackID uuid.UUID, latencyMs int64, userBias int, response datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	res := transaction.WithContext(ctx).
		Model(&types.AdaptiveRun{}).
		Where("feedback_id = ?", feedbackID).
		Updates(map[string]interface{}{
			"status":           types.RunSucceeded,
			"latency_ms":       latencyMs,
			"user_bias":        userBias,
			"response_payload": response,
			"succeeded_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *adaptiveRunRepo) MarkFailed(ctx context.Context, tx *gorm.DB, feedbackID uuid.UUID, errPayload datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	res := transaction.WithContext(ctx).
		Model(&types.AdaptiveRun{}).
		Where("feedback_id = ?", feedbackID).
		Updates(map[string]interface{}{
			"status":        types.RunFailed,
			"error_payload": errPayload,
			"failed_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *adaptiveRunRepo) GetLatestByPeriod(ctx context.Context, tx *gorm.DB, sessionKey string, year, month int) (*types.AdaptiveRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.AdaptiveRun
	if err := transaction.WithContext(ctx).
		Where("session_key = ? AND year = ? AND month = ?", sessionKey, year, month).
		Order("requested_at DESC").
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *adaptiveRunRepo) GetLatestSucceededBias(ctx context.Context, tx *gorm.DB, sessionKey string) (*int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.AdaptiveRun
	if err := transaction.WithContext(ctx).
		Where("session_key = ? AND status = ? AND user_bias IS NOT NULL", sessionKey, types.RunSucceeded).
		Order("succeeded_at DESC").
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.UserBias, nil
}
