package repository

import (
	"context"

	"github.com/estudiobarro/taller-api/internal/domain/entity"
)

// ProductionMovementRepository log append-only de movimientos de producción.
// Solo inserta y lista; no hay update ni delete.
type ProductionMovementRepository interface {
	// Create inserta el movimiento y completa ID y CreatedAt desde el storage.
	Create(ctx context.Context, movement *entity.ProductionMovement) error

	// ListRecent movimientos más recientes primero, con nombres de catálogo.
	ListRecent(ctx context.Context, limit int) ([]*entity.MovementHistoryItem, error)
}
