package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estudiobarro/taller-api/internal/domain/entity"
	"github.com/estudiobarro/taller-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL.
// La tabla es append-only; no hay update ni delete.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste un asiento y completa ID y CreatedAt desde el storage.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (entry_date, concept, entry_type, amount, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, e.EntryDate, e.Concept, e.Type, e.Amount, e.CreatedBy).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// List asientos más recientes primero, con filtro opcional de fechas.
func (r *LedgerRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, entry_date, concept, entry_type, amount, created_by, created_at
		FROM ledger_entries WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND entry_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY entry_date DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.Concept, &e.Type, &e.Amount, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Balance ingresos menos egresos del rango (o de toda la historia).
func (r *LedgerRepo) Balance(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN entry_type = 'INCOME' THEN amount ELSE -amount END), 0)
		FROM ledger_entries WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND entry_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND entry_date <= $%d", pos)
		args = append(args, *to)
	}
	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("ledger balance: %w", err)
	}
	return balance, nil
}
