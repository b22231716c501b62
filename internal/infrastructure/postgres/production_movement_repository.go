package postgres

import (
	"context"
	"fmt"

	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

var _ repository.ProductionMovementRepository = (*ProductionMovementRepo)(nil)

// ProductionMovementRepo implementación del log de movimientos sobre
// PostgreSQL (usable con pool o tx). Solo INSERT y SELECT: la tabla es
// append-only.
type ProductionMovementRepo struct {
	q Querier
}

// NewProductionMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionMovementRepository(q Querier) *ProductionMovementRepo {
	return &ProductionMovementRepo{q: q}
}

// Create persiste un movimiento y completa ID y CreatedAt desde el storage.
func (r *ProductionMovementRepo) Create(ctx context.Context, m *entity.ProductionMovement) error {
	query := `
		INSERT INTO production_movements
			(product_id, movement_type, from_stage, to_stage, from_color_variant_id, to_color_variant_id, quantity, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	notes := (*string)(nil)
	if m.Notes != "" {
		notes = &m.Notes
	}
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.Type, stageToText(m.FromStage), stageToText(m.ToStage),
		m.FromColorVariantID, m.ToColorVariantID, m.Quantity, notes, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create production movement: %w", err)
	}
	return nil
}

// ListRecent movimientos más recientes primero (por id, que sigue el orden de
// inserción), con nombres de catálogo.
func (r *ProductionMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.MovementHistoryItem, error) {
	query := `
		SELECT m.id, p.name, p.sku, m.movement_type, m.from_stage, m.to_stage,
			cv.name, m.quantity, COALESCE(m.notes, ''), m.created_by, m.created_at
		FROM production_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN color_variants cv ON cv.id = COALESCE(m.to_color_variant_id, m.from_color_variant_id)
		ORDER BY m.id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	var items []*entity.MovementHistoryItem
	for rows.Next() {
		var item entity.MovementHistoryItem
		var fromStage, toStage *string
		if err := rows.Scan(&item.ID, &item.ProductName, &item.SKU, &item.Type,
			&fromStage, &toStage, &item.ColorName, &item.Quantity,
			&item.Notes, &item.CreatedBy, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		item.FromStage = textToStage(fromStage)
		item.ToStage = textToStage(toStage)
		items = append(items, &item)
	}
	return items, rows.Err()
}

func stageToText(s *entity.Stage) *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}

func textToStage(s *string) *entity.Stage {
	if s == nil {
		return nil
	}
	stage := entity.Stage(*s)
	return &stage
}
