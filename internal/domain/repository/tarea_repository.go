package repository

import (
	"context"
	"time"

	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
)

// OrdenListado selecciona el orden por defecto de un listado de tareas.
type OrdenListado int

const (
	// OrdenGeneral: fecha_ejecucion desc, prioridad desc, nombre asc.
	OrdenGeneral OrdenListado = iota
	// OrdenDia: prioridad desc, nombre asc (listados acotados a un día).
	OrdenDia
)

// TareaFilter combina los criterios de consulta. Los punteros nil se omiten.
// FechaFin ya debe venir extendida al último instante del día por el caso de uso.
type TareaFilter struct {
	Estado      *entity.Estado
	Responsable *string
	FechaInicio *time.Time
	FechaFin    *time.Time
	Orden       OrdenListado
}

// TareaRepository define el puerto de persistencia para Tarea (DIP).
// GetByID devuelve (nil, nil) si la tarea no existe.
type TareaRepository interface {
	Create(ctx context.Context, t *entity.Tarea) error
	// CreateBatch inserta todas las tareas o ninguna (clonación).
	CreateBatch(ctx context.Context, ts []*entity.Tarea) error
	GetByID(ctx context.Context, id string) (*entity.Tarea, error)
	// GetDetalleByID devuelve la tarea con las proyecciones de responsable y
	// menú, o (nil, nil) si no existe.
	GetDetalleByID(ctx context.Context, id string) (*entity.TareaDetalle, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Tarea, error)
	Update(ctx context.Context, t *entity.Tarea) error
	Delete(ctx context.Context, id string) error
	// List devuelve tareas con las proyecciones de responsable y menú.
	List(ctx context.Context, f TareaFilter) ([]*entity.TareaDetalle, error)

	// TomarPendiente es el check-then-set atómico de take(): pasa a ASIGNADA
	// con el actor como responsable solo si el estado actual es PENDIENTE.
	// Devuelve false sin error si la tarea existe pero no está PENDIENTE.
	TomarPendiente(ctx context.Context, id, actorID string, ahora time.Time) (bool, error)

	// PurgarCreadasAntes elimina toda tarea creada antes del corte, sin
	// importar su estado. Devuelve cuántas eliminó.
	PurgarCreadasAntes(ctx context.Context, corte time.Time) (int64, error)

	// ExpirarProgramadasAntes pasa a VENCIDA toda tarea no terminal con
	// fecha_ejecucion anterior al corte, registrando al actor como
	// responsable (si actorID es vacío conserva el responsable actual).
	ExpirarProgramadasAntes(ctx context.Context, corte time.Time, actorID string, ahora time.Time) (int64, error)
}
