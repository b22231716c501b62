package production

import (
	"context"

	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// producción: si fn devuelve error (o el contexto se cancela antes del
// commit), todo se revierte, incluidas las filas de balance creadas
// perezosamente por el resolver.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.StageBalanceRepository,
		movementRepo repository.ProductionMovementRepository,
	) error) error
}
