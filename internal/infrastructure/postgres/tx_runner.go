package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estudiobarro/taller-api/internal/application/production"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es el
// único mecanismo de atomicidad del motor de producción: el Rollback diferido
// revierte todo (incluidas las filas de balance creadas por el resolver) si
// fn falla, si el commit falla o si el contexto se cancela antes del commit.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.StageBalanceRepository,
	movementRepo repository.ProductionMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balanceRepo := NewStageBalanceRepository(tx)
	movementRepo := NewProductionMovementRepository(tx)

	if err := fn(balanceRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
