package services

import (
	"context"
	"errors"
	"testing"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

func favoriteFixture(items ...*types.ClothingItem) (FavoriteService, *fakeFavoriteRepo) {
	repo := newFakeFavoriteRepo()
	return NewFavoriteService(nil, testLogger(), repo, newFakeClothingRepo(items...)), repo
}

func TestFavoriteAddIsIdempotent(t *testing.T) {
	svc, repo := favoriteFixture(&types.ClothingItem{ID: 1, Name: "coat"})

	if err := svc.Add(context.Background(), "sess", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Add(context.Background(), "sess", 1); err != nil {
		t.Fatalf("repeated add must be a no-op, got %v", err)
	}
	if got := len(repo.rows["sess"]); got != 1 {
		t.Errorf("want 1 favorite row, got %d", got)
	}
}

func TestFavoriteAddUnknownClothing(t *testing.T) {
	svc, _ := favoriteFixture()
	if err := svc.Add(context.Background(), "sess", 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("want ErrNotFound for unknown garment, got %v", err)
	}
}

func TestFavoriteRemoveNotFound(t *testing.T) {
	svc, _ := favoriteFixture(&types.ClothingItem{ID: 1})
	if err := svc.Remove(context.Background(), "sess", 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestFavoritedSetMarksOnlyOwnFavorites(t *testing.T) {
	svc, _ := favoriteFixture(
		&types.ClothingItem{ID: 1},
		&types.ClothingItem{ID: 2},
	)
	if err := svc.Add(context.Background(), "sess", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Add(context.Background(), "other", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := svc.FavoritedSet(context.Background(), "sess", []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set[1] || set[2] {
		t.Errorf("only own favorites should be flagged: %v", set)
	}
}
