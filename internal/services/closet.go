package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

const (
	closetLimitDefault = 30
	closetLimitMax     = 200
)

// ClosetItemView is one closet entry with the session's favorite flag merged in.
type ClosetItemView struct {
	Item      *types.ClothingItem `json:"item"`
	Favorited bool                `json:"favorited"`
}

// ClosetService manages a session's garment collection. The closet itself is
// created lazily the first time a session touches it.
type ClosetService interface {
	ListItems(ctx context.Context, sessionKey string, category *types.ClothingCategory, limit int) ([]ClosetItemView, error)
	AddItem(ctx context.Context, sessionKey string, clothingID int64) error
	RemoveItem(ctx context.Context, sessionKey string, clothingID int64) error
}

type closetService struct {
	db           *gorm.DB
	log          *logger.Logger
	closetRepo   repos.ClosetRepo
	clothingRepo repos.ClothingItemRepo
	favorites    FavoriteService
}

func NewClosetService(db *gorm.DB, log *logger.Logger, closetRepo repos.ClosetRepo, clothingRepo repos.ClothingItemRepo, favorites FavoriteService) ClosetService {
	return &closetService{
		db:           db,
		log:          log.With("service", "ClosetService"),
		closetRepo:   closetRepo,
		clothingRepo: clothingRepo,
		favorites:    favorites,
	}
}

func normalizeClosetLimit(limit int) int {
	if limit <= 0 {
		return closetLimitDefault
	}
	if limit > closetLimitMax {
		return closetLimitMax
	}
	return limit
}

func (s *closetService) ListItems(ctx context.Context, sessionKey string, category *types.ClothingCategory, limit int) ([]ClosetItemView, error) {
	closet, err := s.closetRepo.GetOrCreate(ctx, nil, sessionKey)
	if err != nil {
		return nil, err
	}

	ids, err := s.closetRepo.ListClothingIDs(ctx, nil, closet.ID, category, normalizeClosetLimit(limit))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []ClosetItemView{}, nil
	}

	rows, err := s.clothingRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	favorited, err := s.favorites.FavoritedSet(ctx, sessionKey, ids)
	if err != nil {
		return nil, err
	}

	// Preserve insertion order; Find does not guarantee it.
	byID := make(map[int64]*types.ClothingItem, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	views := make([]ClosetItemView, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			views = append(views, ClosetItemView{Item: item, Favorited: favorited[id]})
		}
	}
	return views, nil
}

func (s *closetService) AddItem(ctx context.Context, sessionKey string, clothingID int64) error {
	if _, err := s.clothingRepo.GetByID(ctx, nil, clothingID); err != nil {
		return err
	}
	closet, err := s.closetRepo.GetOrCreate(ctx, nil, sessionKey)
	if err != nil {
		return err
	}
	return s.closetRepo.AddItem(ctx, nil, closet.ID, clothingID)
}

func (s *closetService) RemoveItem(ctx context.Context, sessionKey string, clothingID int64) error {
	closet, err := s.closetRepo.GetOrCreate(ctx, nil, sessionKey)
	if err != nil {
		return err
	}
	return s.closetRepo.RemoveItem(ctx, nil, closet.ID, clothingID)
}
