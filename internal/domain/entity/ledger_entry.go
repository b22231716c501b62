package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento contable.
const (
	LedgerTypeIncome  = "INCOME"
	LedgerTypeExpense = "EXPENSE"
)

// LedgerEntry asiento simple de la contabilidad del taller. Inmutable una vez
// registrado; las correcciones se hacen con asientos compensatorios.
type LedgerEntry struct {
	ID        int64
	EntryDate time.Time
	Concept   string
	Type      string          // INCOME, EXPENSE
	Amount    decimal.Decimal // siempre positivo; el tipo da el signo
	CreatedBy string
	CreatedAt time.Time
}
