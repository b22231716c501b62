package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estudiobarro/taller-api/internal/domain"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

var _ repository.StageBalanceRepository = (*StageBalanceRepo)(nil)

// StageBalanceRepo implementación de StageBalanceRepository sobre PostgreSQL
// (usable con pool o tx). El índice único de stage_balances es NULLS NOT
// DISTINCT, así que dos colores NULL casan como la misma llave tanto en el
// upsert como en las lecturas (IS NOT DISTINCT FROM).
type StageBalanceRepo struct {
	q Querier
}

// NewStageBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStageBalanceRepository(q Querier) *StageBalanceRepo {
	return &StageBalanceRepo{q: q}
}

// EnsureRow inserta la fila de la llave en cero si no existe (insert-if-absent
// atómico; sin carrera select-then-insert).
func (r *StageBalanceRepo) EnsureRow(ctx context.Context, productID string, stage entity.Stage, colorVariantID *string) error {
	query := `
		INSERT INTO stage_balances (product_id, stage, color_variant_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, stage, color_variant_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query, productID, string(stage), colorVariantID)
	if err != nil {
		return fmt.Errorf("ensure stage balance: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el balance y bloquea la fila (SELECT FOR UPDATE) para
// serializar escritores concurrentes sobre la misma llave.
func (r *StageBalanceRepo) GetForUpdate(ctx context.Context, productID string, stage entity.Stage, colorVariantID *string) (*entity.StageBalance, error) {
	query := `
		SELECT product_id, stage, color_variant_id, quantity, updated_at
		FROM stage_balances
		WHERE product_id = $1 AND stage = $2 AND color_variant_id IS NOT DISTINCT FROM $3
		FOR UPDATE`
	var b entity.StageBalance
	var stageStr string
	err := r.q.QueryRow(ctx, query, productID, string(stage), colorVariantID).Scan(
		&b.ProductID, &stageStr, &b.ColorVariantID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Llave aún sin fila: balance cero (el caller decide si la crea).
			return &entity.StageBalance{ProductID: productID, Stage: stage, ColorVariantID: colorVariantID}, nil
		}
		return nil, fmt.Errorf("get stage balance for update: %w", err)
	}
	b.Stage = entity.Stage(stageStr)
	return &b, nil
}

// UpdateQuantity fija la cantidad de la llave. Si el CHECK quantity >= 0
// dispara (carrera que pasó el pre-chequeo), se mapea a ErrConflict.
func (r *StageBalanceRepo) UpdateQuantity(ctx context.Context, productID string, stage entity.Stage, colorVariantID *string, quantity int64) error {
	query := `
		UPDATE stage_balances
		SET quantity = $4, updated_at = now()
		WHERE product_id = $1 AND stage = $2 AND color_variant_id IS NOT DISTINCT FROM $3`
	_, err := r.q.Exec(ctx, query, productID, string(stage), colorVariantID, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: balance negativo rechazado por el storage", domain.ErrConflict)
		}
		return fmt.Errorf("update stage balance: %w", err)
	}
	return nil
}

// ListOnHand balances positivos con nombres de catálogo, ordenados por
// producto, etapa del pipeline y color.
func (r *StageBalanceRepo) ListOnHand(ctx context.Context) ([]*entity.OnHandItem, error) {
	query := `
		SELECT b.product_id, p.name, p.sku, b.stage, cv.name, b.quantity, b.updated_at
		FROM stage_balances b
		JOIN products p ON p.id = b.product_id
		LEFT JOIN color_variants cv ON cv.id = b.color_variant_id
		WHERE b.quantity > 0
		ORDER BY p.name,
			CASE b.stage WHEN 'RAW' THEN 0 WHEN 'FIRED' THEN 1 ELSE 2 END,
			cv.name NULLS FIRST`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list on hand: %w", err)
	}
	defer rows.Close()
	var items []*entity.OnHandItem
	for rows.Next() {
		var item entity.OnHandItem
		var stageStr string
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.SKU, &stageStr,
			&item.ColorName, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan on hand: %w", err)
		}
		item.Stage = entity.Stage(stageStr)
		items = append(items, &item)
	}
	return items, rows.Err()
}
