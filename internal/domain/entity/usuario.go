package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin    = "admin"
	RolRegente  = "regente"
	RolCocinero = "cocinero"
	RolUser     = "user"
)

// RolValido indica si el rol pertenece al conjunto conocido.
func RolValido(rol string) bool {
	switch rol {
	case RolAdmin, RolRegente, RolCocinero, RolUser:
		return true
	}
	return false
}

// Usuario representa un usuario del sistema.
type Usuario struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          string // admin, regente, cocinero, user
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
