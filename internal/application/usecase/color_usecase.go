package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estudiobarro/taller-api/internal/application/dto"
	"github.com/estudiobarro/taller-api/internal/domain"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

// ColorUseCase CRUD de variantes de color (esmaltes).
type ColorUseCase struct {
	colorRepo repository.ColorVariantRepository
}

// NewColorUseCase construye el caso de uso.
func NewColorUseCase(colorRepo repository.ColorVariantRepository) *ColorUseCase {
	return &ColorUseCase{colorRepo: colorRepo}
}

// Create registra una variante de color.
func (uc *ColorUseCase) Create(ctx context.Context, in dto.CreateColorVariantRequest) (*dto.ColorVariantResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	variant := &entity.ColorVariant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		HexCode:   in.HexCode,
		CreatedAt: time.Now(),
	}
	if err := uc.colorRepo.Create(ctx, variant); err != nil {
		return nil, err
	}
	return toColorResponse(variant), nil
}

// List lista todas las variantes.
func (uc *ColorUseCase) List(ctx context.Context) ([]*dto.ColorVariantResponse, error) {
	variants, err := uc.colorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ColorVariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, toColorResponse(v))
	}
	return out, nil
}

func toColorResponse(v *entity.ColorVariant) *dto.ColorVariantResponse {
	return &dto.ColorVariantResponse{
		ID:        v.ID,
		Name:      v.Name,
		HexCode:   v.HexCode,
		CreatedAt: v.CreatedAt,
	}
}
