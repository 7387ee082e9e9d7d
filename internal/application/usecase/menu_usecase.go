package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
)

// MenuUseCase aplica reglas de negocio para los menús plantilla.
type MenuUseCase struct {
	repo repository.MenuRepository
}

// NewMenuUseCase construye el caso de uso con el puerto de persistencia.
func NewMenuUseCase(repo repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Create crea un menú plantilla. Disponible por defecto true.
// Devuelve ErrDuplicate si el nombre ya existe.
func (uc *MenuUseCase) Create(ctx context.Context, in dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	disponible := true
	if in.Disponible != nil {
		disponible = *in.Disponible
	}
	now := time.Now()
	m := &entity.Menu{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Disponible:  disponible,
		TareasBase:  in.TareasBase,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMenuResponse(m), nil
}

// GetByID obtiene un menú con sus tareas base.
func (uc *MenuUseCase) GetByID(ctx context.Context, id string) (*dto.MenuResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMenuResponse(m), nil
}

// List lista todos los menús con sus tareas base.
func (uc *MenuUseCase) List(ctx context.Context) ([]*dto.MenuResponse, error) {
	menus, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MenuResponse, 0, len(menus))
	for _, m := range menus {
		out = append(out, toMenuResponse(m))
	}
	return out, nil
}

// Update edición parcial: solo los campos presentes sobrescriben.
func (uc *MenuUseCase) Update(ctx context.Context, id string, in dto.UpdateMenuRequest) (*dto.MenuResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil && *in.Nombre != "" {
		m.Nombre = *in.Nombre
	}
	if in.Descripcion != nil && *in.Descripcion != "" {
		m.Descripcion = *in.Descripcion
	}
	if in.Disponible != nil {
		m.Disponible = *in.Disponible
	}
	if in.TareasBase != nil {
		m.TareasBase = *in.TareasBase
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMenuResponse(m), nil
}

// Delete elimina un menú plantilla. Las tareas referenciadas no se tocan:
// el menú solo tiene referencias débiles.
func (uc *MenuUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toMenuResponse(m *entity.Menu) *dto.MenuResponse {
	tareas := m.TareasBase
	if tareas == nil {
		tareas = []string{}
	}
	return &dto.MenuResponse{
		ID:          m.ID,
		Nombre:      m.Nombre,
		Descripcion: m.Descripcion,
		Disponible:  m.Disponible,
		TareasBase:  tareas,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
