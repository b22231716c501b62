package dto

import "time"

// InputRequest body para POST /api/production/input.
type InputRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// AdvanceRequest body para POST /api/production/advance.
// to_color_variant_id es obligatorio cuando to_stage es GLAZED.
type AdvanceRequest struct {
	ProductID        string  `json:"product_id"`
	FromStage        string  `json:"from_stage"`
	ToStage          string  `json:"to_stage"`
	ToColorVariantID *string `json:"to_color_variant_id,omitempty"`
	Quantity         int64   `json:"quantity"`
	Notes            string  `json:"notes,omitempty"`
}

// AdjustmentRequest body para POST /api/production/adjustment (set absoluto).
type AdjustmentRequest struct {
	ProductID      string  `json:"product_id"`
	Stage          string  `json:"stage"`
	ColorVariantID *string `json:"color_variant_id,omitempty"`
	TargetQuantity int64   `json:"target_quantity"`
	Notes          string  `json:"notes,omitempty"`
}

// ShrinkageRequest body para POST /api/production/shrinkage.
type ShrinkageRequest struct {
	ProductID      string  `json:"product_id"`
	Stage          string  `json:"stage"`
	ColorVariantID *string `json:"color_variant_id,omitempty"`
	Quantity       int64   `json:"quantity"`
	Notes          string  `json:"notes,omitempty"`
}

// BalanceResponse balance actualizado devuelto por las mutaciones.
type BalanceResponse struct {
	ProductID      string    `json:"product_id"`
	Stage          string    `json:"stage"`
	ColorVariantID *string   `json:"color_variant_id,omitempty"`
	Quantity       int64     `json:"quantity"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MovementResponse movimiento creado por una mutación exitosa.
type MovementResponse struct {
	ID                 int64     `json:"id"`
	ProductID          string    `json:"product_id"`
	Type               string    `json:"movement_type"`
	FromStage          *string   `json:"from_stage,omitempty"`
	ToStage            *string   `json:"to_stage,omitempty"`
	FromColorVariantID *string   `json:"from_color_variant_id,omitempty"`
	ToColorVariantID   *string   `json:"to_color_variant_id,omitempty"`
	Quantity           int64     `json:"quantity"`
	Notes              string    `json:"notes,omitempty"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
}

// TransitionResponse respuesta de las cuatro mutaciones del motor.
type TransitionResponse struct {
	Balances []BalanceResponse `json:"balances"`
	Movement MovementResponse  `json:"movement"`
}

// InsufficientStockDetails details del error INSUFFICIENT_STOCK.
type InsufficientStockDetails struct {
	Stage     string `json:"stage"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
	Missing   int64  `json:"missing"`
}

// OnHandItemResponse fila del inventario vigente.
type OnHandItemResponse struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Stage       string    `json:"stage"`
	ColorName   *string   `json:"color_name,omitempty"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovementHistoryItemResponse fila del historial de movimientos.
type MovementHistoryItemResponse struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Type        string    `json:"movement_type"`
	FromStage   *string   `json:"from_stage,omitempty"`
	ToStage     *string   `json:"to_stage,omitempty"`
	ColorName   *string   `json:"color_name,omitempty"`
	Quantity    int64     `json:"quantity"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
