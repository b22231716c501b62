package repository

import (
	"context"

	"github.com/estudiobarro/taller-api/internal/domain/entity"
)

// ColorVariantRepository persistencia de variantes de color (esmaltes).
type ColorVariantRepository interface {
	Create(ctx context.Context, variant *entity.ColorVariant) error
	GetByID(ctx context.Context, id string) (*entity.ColorVariant, error)
	List(ctx context.Context) ([]*entity.ColorVariant, error)
}
