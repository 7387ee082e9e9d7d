package dto

import "time"

// CreateTareaRequest alta de una tarea, suelta o asociada a un menú.
// Si viene responsable la tarea nace ASIGNADA; si no, PENDIENTE.
type CreateTareaRequest struct {
	Nombre         string    `json:"nombre" validate:"required"`
	Descripcion    string    `json:"descripcion"`
	MenuID         *string   `json:"menu_id" validate:"omitempty,uuid4"`
	Responsable    *string   `json:"responsable" validate:"omitempty,uuid4"`
	Prioridad      string    `json:"prioridad" validate:"omitempty,oneof=BAJA MEDIA ALTA"`
	FechaEjecucion time.Time `json:"fecha_ejecucion" validate:"required"`
}

// UpdateTareaRequest edición parcial: un campo ausente nunca sobrescribe.
type UpdateTareaRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=1"`
	Descripcion *string `json:"descripcion"`
}

// CambiarEstadoRequest transición genérica de estado.
type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// AsignarRequest asigna un responsable existente a la tarea.
type AsignarRequest struct {
	Responsable string `json:"responsable" validate:"required,uuid4"`
}

// ClonarRequest clona una tarea a una o más fechas. La resolución por campo
// es: override presente y no vacío gana, si no hereda de la tarea origen.
// Prioridad usa semántica "definido gana aunque sea vacío": un puntero no nil
// siempre se aplica (y se valida contra el enum).
type ClonarRequest struct {
	Fechas      []time.Time `json:"fechas" validate:"required,min=1"`
	Nombre      *string     `json:"nombre"`
	Descripcion *string     `json:"descripcion"`
	Prioridad   *string     `json:"prioridad"`
	Responsable *string     `json:"responsable"`
}

// ListarTareasRequest filtros de consulta sobre la colección de tareas.
type ListarTareasRequest struct {
	Estado      string `query:"estado"`
	Responsable string `query:"responsable"`
	FechaInicio string `query:"fecha_inicio"` // YYYY-MM-DD
	FechaFin    string `query:"fecha_fin"`    // YYYY-MM-DD, inclusive
}

// UsuarioResumenDTO proyección denormalizada del responsable en listados.
type UsuarioResumenDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
}

// MenuResumenDTO proyección denormalizada del menú en listados.
type MenuResumenDTO struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// TareaResponse representación completa de una tarea.
type TareaResponse struct {
	ID             string             `json:"id"`
	Nombre         string             `json:"nombre"`
	Descripcion    string             `json:"descripcion,omitempty"`
	MenuID         *string            `json:"menu_id,omitempty"`
	Responsable    *string            `json:"responsable,omitempty"`
	Estado         string             `json:"estado"`
	Prioridad      string             `json:"prioridad"`
	FechaEjecucion time.Time          `json:"fecha_ejecucion"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	HoraInicio     *time.Time         `json:"hora_inicio,omitempty"`
	HoraFin        *time.Time         `json:"hora_fin,omitempty"`
	ResponsableInfo *UsuarioResumenDTO `json:"responsable_info,omitempty"`
	MenuInfo        *MenuResumenDTO    `json:"menu_info,omitempty"`
}

// ClonarResponse IDs de las tareas creadas por una clonación o carga de menú.
type ClonarResponse struct {
	IDs []string `json:"ids"`
}

// SweepResponse resultado del barrido de mantenimiento.
type SweepResponse struct {
	Purgadas int64 `json:"purgadas"`
	Vencidas int64 `json:"vencidas"`
}
