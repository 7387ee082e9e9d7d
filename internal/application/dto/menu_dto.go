package dto

import "time"

// CreateMenuRequest alta de un menú plantilla.
type CreateMenuRequest struct {
	Nombre      string   `json:"nombre" validate:"required"`
	Descripcion string   `json:"descripcion" validate:"required"`
	Disponible  *bool    `json:"disponible"`
	TareasBase  []string `json:"tareas_base" validate:"omitempty,dive,uuid4"`
}

// UpdateMenuRequest edición parcial del menú.
type UpdateMenuRequest struct {
	Nombre      *string   `json:"nombre" validate:"omitempty,min=1"`
	Descripcion *string   `json:"descripcion" validate:"omitempty,min=1"`
	Disponible  *bool     `json:"disponible"`
	TareasBase  *[]string `json:"tareas_base" validate:"omitempty,dive,uuid4"`
}

// CargarMenuRequest instancia las tareas base de un menú para una fecha.
type CargarMenuRequest struct {
	Fecha time.Time `json:"fecha" validate:"required"`
}

// MenuResponse representación completa de un menú.
type MenuResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Disponible  bool      `json:"disponible"`
	TareasBase  []string  `json:"tareas_base"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
