package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estudiobarro/taller-api/internal/domain/entity"
)

// LedgerRepository persistencia de asientos contables (append-only).
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)

	// Balance suma de INCOME menos suma de EXPENSE en el rango dado.
	Balance(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
}
