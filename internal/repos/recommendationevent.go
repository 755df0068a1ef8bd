package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

// RecommendationEventRepo is the append-only funnel event store. The engine
// never reads events back; the read path belongs to analytics.
type RecommendationEventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, event *types.RecommendationEvent) error
}

type recommendationEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationEventRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationEventRepo {
	return &recommendationEventRepo{db: db, log: baseLog.With("repo", "RecommendationEventRepo")}
}

func (r *recommendationEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.RecommendationEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(event).Error
}
