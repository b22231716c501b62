package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product pieza del catálogo del taller (taza, plato, matera, etc.).
// El stock por etapa vive en StageBalance; el producto solo es catálogo.
type Product struct {
	ID        string
	SKU       string // código único del taller
	Name      string
	Price     decimal.Decimal // precio de venta de la pieza terminada
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
