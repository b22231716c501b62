package production

import (
	"context"

	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

// Límites del historial de movimientos.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// QueryUseCase proyecciones de solo lectura del inventario de producción.
// Nunca muta; usa repositorios atados al pool (no a una transacción).
type QueryUseCase struct {
	balanceRepo  repository.StageBalanceRepository
	movementRepo repository.ProductionMovementRepository
}

// NewQueryUseCase construye las consultas.
func NewQueryUseCase(
	balanceRepo repository.StageBalanceRepository,
	movementRepo repository.ProductionMovementRepository,
) *QueryUseCase {
	return &QueryUseCase{balanceRepo: balanceRepo, movementRepo: movementRepo}
}

// CurrentInventory balances positivos con nombres de catálogo, ordenados por
// producto, etapa y color.
func (uc *QueryUseCase) CurrentInventory(ctx context.Context) ([]*entity.OnHandItem, error) {
	return uc.balanceRepo.ListOnHand(ctx)
}

// MovementHistory movimientos más recientes primero. El límite se acota al
// tope del servidor; cero o negativo usa el valor por defecto.
func (uc *QueryUseCase) MovementHistory(ctx context.Context, limit int) ([]*entity.MovementHistoryItem, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return uc.movementRepo.ListRecent(ctx, limit)
}
