package dto

import "time"

// RegisterRequest alta de usuario (solo admin/regente).
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol" validate:"omitempty,oneof=admin regente cocinero user"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse token emitido más los datos básicos del usuario.
type LoginResponse struct {
	Token    string `json:"token"`
	UID      string `json:"uid"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
}

// RenewResponse token renovado para el usuario autenticado.
type RenewResponse struct {
	Token    string `json:"token"`
	UID      string `json:"uid"`
	Username string `json:"username"`
}

// ChangePasswordRequest nueva contraseña para un usuario.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ChangeStateRequest activa o desactiva un usuario.
type ChangeStateRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}

// EditUserRequest edición parcial de usuario: solo los campos presentes
// sobrescriben lo almacenado.
type EditUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Rol      *string `json:"rol" validate:"omitempty,oneof=admin regente cocinero user"`
}

// UsuarioResponse usuario sin hash de contraseña.
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
