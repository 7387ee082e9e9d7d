package tareas

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
)

// CargarMenu instancia todas las tareas base de un menú plantilla para una
// fecha: cada clon nace PENDIENTE, programado para la fecha, con identidad y
// timestamps frescos, sin responsable ni horas. Las inserciones son un solo
// lote atómico. Devuelve los IDs creados.
func (uc *TareaUseCase) CargarMenu(ctx context.Context, menuID string, fecha time.Time) (*dto.ClonarResponse, error) {
	if err := validarID(menuID); err != nil {
		return nil, err
	}
	m, err := uc.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	base, err := uc.tareaRepo.GetByIDs(ctx, m.TareasBase)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	clones := make([]*entity.Tarea, 0, len(base))
	ids := make([]string, 0, len(base))
	for _, orig := range base {
		menuRef := m.ID
		c := &entity.Tarea{
			ID:             uuid.New().String(),
			Nombre:         orig.Nombre,
			Descripcion:    orig.Descripcion,
			MenuID:         &menuRef,
			Estado:         entity.EstadoPendiente,
			Prioridad:      orig.Prioridad,
			FechaEjecucion: fecha,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		clones = append(clones, c)
		ids = append(ids, c.ID)
	}
	if len(clones) > 0 {
		err = uc.tx.Run(ctx, func(tareaRepo repository.TareaRepository, _ repository.MenuRepository) error {
			return tareaRepo.CreateBatch(ctx, clones)
		})
		if err != nil {
			return nil, err
		}
	}
	return &dto.ClonarResponse{IDs: ids}, nil
}

// Clonar produce un clon de la tarea origen por cada fecha destino.
// Resolución por campo: override presente y no vacío gana, si no se hereda
// del origen. Prioridad usa semántica "definido gana": un puntero no nil
// siempre se aplica, y un valor definido fuera del enum es ErrBadRequest.
// El estado de cada clon es ASIGNADA si hay override de responsable, si no
// PENDIENTE. Nunca se copian id, hora_inicio ni hora_fin. La inserción es
// todo-o-nada.
func (uc *TareaUseCase) Clonar(ctx context.Context, tareaID string, in dto.ClonarRequest) (*dto.ClonarResponse, error) {
	if len(in.Fechas) == 0 {
		return nil, domain.ErrBadRequest
	}
	if err := validarID(tareaID); err != nil {
		return nil, err
	}
	orig, err := uc.tareaRepo.GetByID(ctx, tareaID)
	if err != nil {
		return nil, err
	}
	if orig == nil {
		return nil, domain.ErrNotFound
	}

	nombre := orig.Nombre
	if in.Nombre != nil && *in.Nombre != "" {
		nombre = *in.Nombre
	}
	descripcion := orig.Descripcion
	if in.Descripcion != nil && *in.Descripcion != "" {
		descripcion = *in.Descripcion
	}
	prioridad := orig.Prioridad
	if in.Prioridad != nil {
		prioridad = entity.Prioridad(*in.Prioridad)
		if !entity.PrioridadValida(prioridad) {
			return nil, domain.ErrBadRequest
		}
	}

	estado := entity.EstadoPendiente
	var responsable *string
	if in.Responsable != nil && *in.Responsable != "" {
		u, err := uc.usuarioRepo.GetByID(ctx, *in.Responsable)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrUsuarioNoEncontrado
		}
		responsable = in.Responsable
		estado = entity.EstadoAsignada
	}

	now := time.Now()
	clones := make([]*entity.Tarea, 0, len(in.Fechas))
	ids := make([]string, 0, len(in.Fechas))
	for _, fecha := range in.Fechas {
		c := &entity.Tarea{
			ID:             uuid.New().String(),
			Nombre:         nombre,
			Descripcion:    descripcion,
			MenuID:         orig.MenuID,
			Responsable:    responsable,
			Estado:         estado,
			Prioridad:      prioridad,
			FechaEjecucion: fecha,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		clones = append(clones, c)
		ids = append(ids, c.ID)
	}
	err = uc.tx.Run(ctx, func(tareaRepo repository.TareaRepository, _ repository.MenuRepository) error {
		return tareaRepo.CreateBatch(ctx, clones)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ClonarResponse{IDs: ids}, nil
}
