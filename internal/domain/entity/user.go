package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"    // acceso completo, incluida contabilidad
	RoleTaller   = "taller"   // registra producción y movimientos
	RoleVendedor = "vendedor" // solo lectura de inventario
)

// User usuario del back office.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, taller, vendedor
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
