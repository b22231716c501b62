package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("existencias insuficientes")
)

// InsufficientStockError existencias insuficientes en la etapa origen de una
// operación. Lleva los datos que el caller necesita para un mensaje accionable
// (disponible, pedido, faltante); se capturan antes de abortar la transacción.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando.
type InsufficientStockError struct {
	Stage     string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("existencias insuficientes en etapa %s: disponibles %d, pedidas %d (faltan %d)",
		e.Stage, e.Available, e.Requested, e.Missing())
}

// Missing faltante calculado: pedido - disponible.
func (e *InsufficientStockError) Missing() int64 {
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
