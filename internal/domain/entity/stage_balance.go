package entity

import "time"

// StageBalance existencias actuales de un producto en una etapa del pipeline
// (y variante de color si la etapa es GLAZED; en el resto ColorVariantID es nil).
// La fila se crea perezosamente en cero y nunca se borra; Quantity nunca es
// negativa: toda mutación que la dejaría por debajo de cero aborta la
// transacción completa.
type StageBalance struct {
	ProductID      string
	Stage          Stage
	ColorVariantID *string
	Quantity       int64
	UpdatedAt      time.Time
}

// OnHandItem fila del inventario vigente (balance > 0) con nombres de
// catálogo para mostrar. Modelo de lectura, no se persiste.
type OnHandItem struct {
	ProductID   string
	ProductName string
	SKU         string
	Stage       Stage
	ColorName   *string
	Quantity    int64
	UpdatedAt   time.Time
}
