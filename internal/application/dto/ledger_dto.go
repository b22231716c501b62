package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest body para POST /api/ledger/entries.
type CreateLedgerEntryRequest struct {
	EntryDate string          `json:"entry_date"` // YYYY-MM-DD; vacío = hoy
	Concept   string          `json:"concept"`
	Type      string          `json:"type"` // INCOME, EXPENSE
	Amount    decimal.Decimal `json:"amount"`
}

// LedgerEntryResponse asiento contable.
type LedgerEntryResponse struct {
	ID        int64           `json:"id"`
	EntryDate string          `json:"entry_date"`
	Concept   string          `json:"concept"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// LedgerBalanceResponse balance agregado: ingresos menos egresos del rango.
type LedgerBalanceResponse struct {
	From    string          `json:"from,omitempty"`
	To      string          `json:"to,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}
