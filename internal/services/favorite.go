package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
)

// FavoriteService marks catalog garments per session. Adding twice is a no-op.
type FavoriteService interface {
	Add(ctx context.Context, sessionKey string, clothingID int64) error
	Remove(ctx context.Context, sessionKey string, clothingID int64) error
	List(ctx context.Context, sessionKey string) ([]int64, error)
	IsFavorite(ctx context.Context, sessionKey string, clothingID int64) (bool, error)
	// FavoritedSet reports which of the given ids the session has favorited.
	FavoritedSet(ctx context.Context, sessionKey string, clothingIDs []int64) (map[int64]bool, error)
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
	clothingRepo repos.ClothingItemRepo
}

func NewFavoriteService(db *gorm.DB, log *logger.Logger, favoriteRepo repos.FavoriteRepo, clothingRepo repos.ClothingItemRepo) FavoriteService {
	return &favoriteService{
		db:           db,
		log:          log.With("service", "FavoriteService"),
		favoriteRepo: favoriteRepo,
		clothingRepo: clothingRepo,
	}
}

func (s *favoriteService) Add(ctx context.Context, sessionKey string, clothingID int64) error {
	// The garment must exist in the catalog before it can be favorited.
	if _, err := s.clothingRepo.GetByID(ctx, nil, clothingID); err != nil {
		return err
	}
	if err := s.favoriteRepo.Add(ctx, nil, sessionKey, clothingID); err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			return nil
		}
		return err
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, sessionKey string, clothingID int64) error {
	return s.favoriteRepo.Remove(ctx, nil, sessionKey, clothingID)
}

func (s *favoriteService) List(ctx context.Context, sessionKey string) ([]int64, error) {
	return s.favoriteRepo.ListClothingIDs(ctx, nil, sessionKey)
}

func (s *favoriteService) IsFavorite(ctx context.Context, sessionKey string, clothingID int64) (bool, error) {
	return s.favoriteRepo.Exists(ctx, nil, sessionKey, clothingID)
}

func (s *favoriteService) FavoritedSet(ctx context.Context, sessionKey string, clothingIDs []int64) (map[int64]bool, error) {
	favorited := make(map[int64]bool, len(clothingIDs))
	if len(clothingIDs) == 0 {
		return favorited, nil
	}
	ids, err := s.favoriteRepo.FilterClothingIDs(ctx, nil, sessionKey, clothingIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorited[id] = true
	}
	return favorited, nil
}
