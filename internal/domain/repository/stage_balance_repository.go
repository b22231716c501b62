package repository

import (
	"context"

	"github.com/estudiobarro/taller-api/internal/domain/entity"
)

// StageBalanceRepository persistencia de balances por (producto, etapa, color).
// Las mutaciones se ejecutan siempre dentro de la transacción del caller; la
// resolución de una llave inexistente crea la fila en cero en esa misma
// transacción (si la operación aborta, la fila nueva se revierte con el resto).
type StageBalanceRepository interface {
	// EnsureRow garantiza que exista la fila de la llave, insertándola en cero
	// si falta (insert-if-absent atómico en el storage). Dos colores nil casan
	// entre sí como la misma llave.
	EnsureRow(ctx context.Context, productID string, stage entity.Stage, colorVariantID *string) error

	// GetForUpdate lee el balance bloqueando la fila (SELECT FOR UPDATE) para
	// serializar escritores concurrentes sobre la misma llave.
	GetForUpdate(ctx context.Context, productID string, stage entity.Stage, colorVariantID *string) (*entity.StageBalance, error)

	// UpdateQuantity fija la cantidad de la llave. El CHECK quantity >= 0 del
	// storage es la última línea de defensa; su violación aborta la transacción.
	UpdateQuantity(ctx context.Context, productID string, stage entity.Stage, colorVariantID *string, quantity int64) error

	// ListOnHand balances positivos con nombres de catálogo, ordenados por
	// producto, etapa y color. Solo lectura.
	ListOnHand(ctx context.Context) ([]*entity.OnHandItem, error)
}
