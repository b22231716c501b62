package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name   string           `json:"name,omitempty"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Active *bool            `json:"active,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateColorVariantRequest body para POST /api/colors.
type CreateColorVariantRequest struct {
	Name    string `json:"name"`
	HexCode string `json:"hex_code,omitempty"`
}

// ColorVariantResponse variante de color.
type ColorVariantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HexCode   string    `json:"hex_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
