package entity

import "time"

// Tipos de movimiento de producción.
const (
	MovementTypeInput      = "INPUT"      // entrada de piezas crudas al pipeline
	MovementTypeAdvance    = "ADVANCE"    // avance de etapa (RAW→FIRED, FIRED→GLAZED)
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste absoluto tras conteo físico
	MovementTypeShrink     = "SHRINK"     // merma: rotura, pérdida, descarte
)

// ProductionMovement registro inmutable de un cambio de balance. Se inserta
// exactamente uno por operación exitosa, en la misma transacción que la
// mutación de balances; nunca se actualiza ni se borra. Deshacer un
// movimiento es registrar otro compensatorio.
//
// Quantity es firmada: positiva para entradas y avances, negativa para
// mermas y ajustes a la baja. Un ADVANCE es una sola fila que lleva
// FromStage y ToStage. En un ADJUSTMENT el delta positivo se registra con
// ToStage (entra mercancía a la etapa) y el negativo con FromStage (sale);
// el otro campo queda nil.
type ProductionMovement struct {
	ID                 int64
	ProductID          string
	Type               string
	FromStage          *Stage
	ToStage            *Stage
	FromColorVariantID *string
	ToColorVariantID   *string
	Quantity           int64
	Notes              string
	CreatedBy          string
	CreatedAt          time.Time
}

// MovementHistoryItem fila del historial de movimientos con nombres de
// catálogo para mostrar. Modelo de lectura, no se persiste.
type MovementHistoryItem struct {
	ID          int64
	ProductName string
	SKU         string
	Type        string
	FromStage   *Stage
	ToStage     *Stage
	ColorName   *string
	Quantity    int64
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}
