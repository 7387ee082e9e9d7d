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

// TxRunner ejecuta un callback con repositorios atados a una transacción.
// Lo implementa el adaptador de PostgreSQL; la interfaz evita que el caso de
// uso dependa de la infraestructura.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		tareaRepo repository.TareaRepository,
		menuRepo repository.MenuRepository,
	) error) error
}

// TareaUseCase es el motor de ciclo de vida y planificación de tareas:
// creación, transiciones de estado, clonación desde plantillas, barridos de
// mantenimiento y consultas filtradas.
type TareaUseCase struct {
	tareaRepo   repository.TareaRepository
	menuRepo    repository.MenuRepository
	usuarioRepo repository.UsuarioRepository
	tx          TxRunner
}

// NewTareaUseCase construye el motor con sus puertos de persistencia.
func NewTareaUseCase(
	tareaRepo repository.TareaRepository,
	menuRepo repository.MenuRepository,
	usuarioRepo repository.UsuarioRepository,
	tx TxRunner,
) *TareaUseCase {
	return &TareaUseCase{tareaRepo: tareaRepo, menuRepo: menuRepo, usuarioRepo: usuarioRepo, tx: tx}
}

// Crear crea una tarea, suelta o asociada a un menú. Si viene responsable la
// tarea nace ASIGNADA (verificando que el usuario exista); si no, PENDIENTE.
// Si viene menu_id, la tarea queda registrada como tarea base del menú en la
// misma transacción.
func (uc *TareaUseCase) Crear(ctx context.Context, in dto.CreateTareaRequest) (*dto.TareaResponse, error) {
	prioridad := entity.Prioridad(in.Prioridad)
	if in.Prioridad == "" {
		prioridad = entity.PrioridadMedia
	}
	if !entity.PrioridadValida(prioridad) {
		return nil, domain.ErrBadRequest
	}

	estado := entity.EstadoPendiente
	if in.Responsable != nil && *in.Responsable != "" {
		u, err := uc.usuarioRepo.GetByID(ctx, *in.Responsable)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrUsuarioNoEncontrado
		}
		estado = entity.EstadoAsignada
	} else {
		in.Responsable = nil
	}

	if in.MenuID != nil && *in.MenuID != "" {
		m, err := uc.menuRepo.GetByID(ctx, *in.MenuID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
	} else {
		in.MenuID = nil
	}

	now := time.Now()
	t := &entity.Tarea{
		ID:             uuid.New().String(),
		Nombre:         in.Nombre,
		Descripcion:    in.Descripcion,
		MenuID:         in.MenuID,
		Responsable:    in.Responsable,
		Estado:         estado,
		Prioridad:      prioridad,
		FechaEjecucion: in.FechaEjecucion,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.tx.Run(ctx, func(tareaRepo repository.TareaRepository, menuRepo repository.MenuRepository) error {
		if err := tareaRepo.Create(ctx, t); err != nil {
			return err
		}
		if t.MenuID != nil {
			return menuRepo.AgregarTareaBase(ctx, *t.MenuID, t.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// ObtenerPorID obtiene una tarea con sus proyecciones de responsable y menú.
func (uc *TareaUseCase) ObtenerPorID(ctx context.Context, id string) (*dto.TareaResponse, error) {
	if err := validarID(id); err != nil {
		return nil, err
	}
	d, err := uc.tareaRepo.GetDetalleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toTareaDetalleResponse(d), nil
}

// Tomar es take(): el actor reclama una tarea PENDIENTE, que pasa a ASIGNADA
// con él como responsable. El check-then-set es atómico en el store; si la
// tarea ya no está PENDIENTE devuelve ErrConflict sin modificarla.
func (uc *TareaUseCase) Tomar(ctx context.Context, id, actorID string) (*dto.TareaResponse, error) {
	if err := validarID(id); err != nil {
		return nil, err
	}
	ok, err := uc.tareaRepo.TomarPendiente(ctx, id, actorID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		t, err := uc.tareaRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}
	t, err := uc.tareaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// Asignar asigna un responsable existente. Es idempotente-segura: nunca
// regresa una tarea que ya avanzó a EN_PROCESO o TERMINADO, y rechaza con
// ErrConflict las canceladas o vencidas.
func (uc *TareaUseCase) Asignar(ctx context.Context, id, responsableID string) (*dto.TareaResponse, error) {
	if err := validarID(id); err != nil {
		return nil, err
	}
	t, err := uc.tareaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	u, err := uc.usuarioRepo.GetByID(ctx, responsableID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}

	switch t.Estado {
	case entity.EstadoCancelada, entity.EstadoVencida:
		return nil, domain.ErrConflict
	case entity.EstadoEnProceso, entity.EstadoTerminado:
		// No regresar el estado: solo cambia el responsable.
	default:
		t.Estado = entity.EstadoAsignada
	}
	t.Responsable = &responsableID
	t.UpdatedAt = time.Now()
	if err := uc.tareaRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// CambiarEstado aplica la transición genérica validando la tabla de
// transiciones: un valor fuera del enum devuelve ErrBadRequest y un salto no
// permitido, ErrConflict. Estampa hora_inicio al entrar por primera vez a
// EN_PROCESO y hora_fin al llegar a TERMINADO.
func (uc *TareaUseCase) CambiarEstado(ctx context.Context, id string, nuevo entity.Estado) (*dto.TareaResponse, error) {
	return uc.cambiarEstado(ctx, id, nuevo, false)
}

// ForzarEstado es la corrección administrativa: mismo estampado de tiempos
// pero sin tabla de transiciones. Sigue rechazando valores fuera del enum.
func (uc *TareaUseCase) ForzarEstado(ctx context.Context, id string, nuevo entity.Estado) (*dto.TareaResponse, error) {
	return uc.cambiarEstado(ctx, id, nuevo, true)
}

func (uc *TareaUseCase) cambiarEstado(ctx context.Context, id string, nuevo entity.Estado, forzar bool) (*dto.TareaResponse, error) {
	if err := validarID(id); err != nil {
		return nil, err
	}
	if !entity.EstadoValido(nuevo) {
		return nil, domain.ErrBadRequest
	}
	t, err := uc.tareaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !forzar && !entity.PuedeTransicionar(t.Estado, nuevo) {
		return nil, domain.ErrConflict
	}
	t.MarcarEstado(nuevo, time.Now())
	if err := uc.tareaRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// Actualizar edición parcial de nombre y descripción: un campo ausente nunca
// sobrescribe lo almacenado.
func (uc *TareaUseCase) Actualizar(ctx context.Context, id string, in dto.UpdateTareaRequest) (*dto.TareaResponse, error) {
	if err := validarID(id); err != nil {
		return nil, err
	}
	t, err := uc.tareaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil && *in.Nombre != "" {
		t.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		t.Descripcion = *in.Descripcion
	}
	t.UpdatedAt = time.Now()
	if err := uc.tareaRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// Eliminar borra la tarea y, si estaba asociada a un menú, quita la
// referencia del menú en la misma transacción.
func (uc *TareaUseCase) Eliminar(ctx context.Context, id string) error {
	if err := validarID(id); err != nil {
		return err
	}
	t, err := uc.tareaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return uc.tx.Run(ctx, func(tareaRepo repository.TareaRepository, menuRepo repository.MenuRepository) error {
		if t.MenuID != nil {
			if err := menuRepo.QuitarTareaBase(ctx, *t.MenuID, t.ID); err != nil {
				return err
			}
		}
		return tareaRepo.Delete(ctx, t.ID)
	})
}

// validarID corta con ErrBadRequest los identificadores sintácticamente
// inválidos antes de que lleguen al store.
func validarID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrBadRequest
	}
	return nil
}

func toTareaResponse(t *entity.Tarea) *dto.TareaResponse {
	if t == nil {
		return nil
	}
	return &dto.TareaResponse{
		ID:             t.ID,
		Nombre:         t.Nombre,
		Descripcion:    t.Descripcion,
		MenuID:         t.MenuID,
		Responsable:    t.Responsable,
		Estado:         string(t.Estado),
		Prioridad:      string(t.Prioridad),
		FechaEjecucion: t.FechaEjecucion,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		HoraInicio:     t.HoraInicio,
		HoraFin:        t.HoraFin,
	}
}

func toTareaDetalleResponse(d *entity.TareaDetalle) *dto.TareaResponse {
	out := toTareaResponse(&d.Tarea)
	if d.ResponsableInfo != nil {
		out.ResponsableInfo = &dto.UsuarioResumenDTO{
			ID:       d.ResponsableInfo.ID,
			Username: d.ResponsableInfo.Username,
			Rol:      d.ResponsableInfo.Rol,
		}
	}
	if d.MenuInfo != nil {
		out.MenuInfo = &dto.MenuResumenDTO{
			ID:     d.MenuInfo.ID,
			Nombre: d.MenuInfo.Nombre,
		}
	}
	return out
}
