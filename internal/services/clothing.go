package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamwear/weatherfit-backend/internal/apperr"
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/repos"
	"github.com/teamwear/weatherfit-backend/internal/types"
)

// ClothingInput is the catalog create/update form.
type ClothingInput struct {
	Name            string                 `json:"name"`
	Category        types.ClothingCategory `json:"category"`
	ThicknessLevel  types.ThicknessLevel   `json:"thicknessLevel"`
	UsageType       types.UsageType        `json:"usageType"`
	Seasons         []types.SeasonType     `json:"seasons,omitempty"`
	CottonPct       *int                   `json:"cottonPct,omitempty"`
	PolyesterPct    *int                   `json:"polyesterPct,omitempty"`
	EtcFiberPct     *int                   `json:"etcFiberPct,omitempty"`
	SuitableMinTemp *int                   `json:"suitableMinTemp,omitempty"`
	SuitableMaxTemp *int                   `json:"suitableMaxTemp,omitempty"`
	Color           string                 `json:"color,omitempty"`
	StyleTag        string                 `json:"styleTag,omitempty"`
	ImageURL        string                 `json:"imageUrl,omitempty"`
}

// ClothingService is the catalog CRUD surface.
type ClothingService interface {
	Create(ctx context.Context, input ClothingInput) (*types.ClothingItem, error)
	Get(ctx context.Context, id int64) (*types.ClothingItem, error)
	Update(ctx context.Context, id int64, input ClothingInput) (*types.ClothingItem, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit int) ([]*types.ClothingItem, error)
}

type clothingService struct {
	db           *gorm.DB
	log          *logger.Logger
	clothingRepo repos.ClothingItemRepo
}

func NewClothingService(db *gorm.DB, log *logger.Logger, clothingRepo repos.ClothingItemRepo) ClothingService {
	return &clothingService{
		db:           db,
		log:          log.With("service", "ClothingService"),
		clothingRepo: clothingRepo,
	}
}

func validateClothingInput(input ClothingInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalidArgument)
	}
	if !input.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", apperr.ErrInvalidArgument, input.Category)
	}
	if !input.ThicknessLevel.Valid() {
		return fmt.Errorf("%w: unknown thicknessLevel %q", apperr.ErrInvalidArgument, input.ThicknessLevel)
	}
	if input.UsageType != "" && !input.UsageType.Valid() {
		return fmt.Errorf("%w: unknown usageType %q", apperr.ErrInvalidArgument, input.UsageType)
	}
	for _, pct := range []*int{input.CottonPct, input.PolyesterPct, input.EtcFiberPct} {
		if pct != nil && (*pct < 0 || *pct > 100) {
			return fmt.Errorf("%w: material ratio must be 0-100", apperr.ErrInvalidArgument)
		}
	}
	if input.SuitableMinTemp != nil && input.SuitableMaxTemp != nil && *input.SuitableMinTemp > *input.SuitableMaxTemp {
		return fmt.Errorf("%w: suitableMinTemp exceeds suitableMaxTemp", apperr.ErrInvalidArgument)
	}
	return nil
}

func applyClothingInput(item *types.ClothingItem, input ClothingInput) {
	item.Name = input.Name
	item.Category = input.Category
	item.ThicknessLevel = input.ThicknessLevel
	item.UsageType = input.UsageType
	if item.UsageType == "" {
		item.UsageType = types.UsageBoth
	}
	item.Seasons = input.Seasons
	item.CottonPct = input.CottonPct
	item.PolyesterPct = input.PolyesterPct
	item.EtcFiberPct = input.EtcFiberPct
	item.SuitableMinTemp = input.SuitableMinTemp
	item.SuitableMaxTemp = input.SuitableMaxTemp
	item.Color = input.Color
	item.StyleTag = input.StyleTag
	item.ImageURL = input.ImageURL
}

func (s *clothingService) Create(ctx context.Context, input ClothingInput) (*types.ClothingItem, error) {
	if err := validateClothingInput(input); err != nil {
		return nil, err
	}
	item := &types.ClothingItem{}
	applyClothingInput(item, input)
	if err := s.clothingRepo.Create(ctx, nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *clothingService) Get(ctx context.Context, id int64) (*types.ClothingItem, error) {
	return s.clothingRepo.GetByID(ctx, nil, id)
}

func (s *clothingService) Update(ctx context.Context, id int64, input ClothingInput) (*types.ClothingItem, error) {
	if err := validateClothingInput(input); err != nil {
		return nil, err
	}
	item, err := s.clothingRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	applyClothingInput(item, input)
	if err := s.clothingRepo.Update(ctx, nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *clothingService) Delete(ctx context.Context, id int64) error {
	return s.clothingRepo.Delete(ctx, nil, id)
}

func (s *clothingService) List(ctx context.Context, limit int) ([]*types.ClothingItem, error) {
	return s.clothingRepo.List(ctx, nil, limit)
}
