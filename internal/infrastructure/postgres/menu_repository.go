package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MarcoDimanghene/backcocinagus/internal/domain"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implementación del puerto MenuRepository sobre PostgreSQL.
// Las referencias débiles a tareas base viven en la tabla menu_tareas_base.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// Create persiste un menú y sus referencias a tareas base.
func (r *MenuRepo) Create(ctx context.Context, m *entity.Menu) error {
	query := `
		INSERT INTO menus (id, nombre, descripcion, disponible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Nombre, m.Descripcion, m.Disponible, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert menu: %w", err)
	}
	for _, tareaID := range m.TareasBase {
		if err := r.AgregarTareaBase(ctx, m.ID, tareaID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene un menú con sus tareas base, (nil, nil) si no existe.
func (r *MenuRepo) GetByID(ctx context.Context, id string) (*entity.Menu, error) {
	query := `
		SELECT id, nombre, descripcion, disponible, created_at, updated_at
		FROM menus WHERE id = $1`
	var m entity.Menu
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Nombre, &m.Descripcion, &m.Disponible, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	tareas, err := r.tareasBase(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.TareasBase = tareas
	return &m, nil
}

// List lista todos los menús con sus tareas base.
func (r *MenuRepo) List(ctx context.Context) ([]*entity.Menu, error) {
	query := `
		SELECT id, nombre, descripcion, disponible, created_at, updated_at
		FROM menus ORDER BY nombre ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()
	var list []*entity.Menu
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Descripcion, &m.Disponible, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		tareas, err := r.tareasBase(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.TareasBase = tareas
	}
	return list, nil
}

// Update actualiza el menú y reemplaza sus referencias a tareas base.
func (r *MenuRepo) Update(ctx context.Context, m *entity.Menu) error {
	query := `
		UPDATE menus SET nombre = $2, descripcion = $3, disponible = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Nombre, m.Descripcion, m.Disponible, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update menu: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM menu_tareas_base WHERE menu_id = $1`, m.ID); err != nil {
		return fmt.Errorf("reset tareas base: %w", err)
	}
	for _, tareaID := range m.TareasBase {
		if err := r.AgregarTareaBase(ctx, m.ID, tareaID); err != nil {
			return err
		}
	}
	return nil
}

// Delete elimina un menú; las referencias caen por cascada.
func (r *MenuRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return nil
}

// AgregarTareaBase registra la referencia menú -> tarea (idempotente).
func (r *MenuRepo) AgregarTareaBase(ctx context.Context, menuID, tareaID string) error {
	query := `
		INSERT INTO menu_tareas_base (menu_id, tarea_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, menuID, tareaID); err != nil {
		return fmt.Errorf("agregar tarea base: %w", err)
	}
	return nil
}

// QuitarTareaBase elimina la referencia; no falla si no existía.
func (r *MenuRepo) QuitarTareaBase(ctx context.Context, menuID, tareaID string) error {
	query := `DELETE FROM menu_tareas_base WHERE menu_id = $1 AND tarea_id = $2`
	if _, err := r.q.Exec(ctx, query, menuID, tareaID); err != nil {
		return fmt.Errorf("quitar tarea base: %w", err)
	}
	return nil
}

func (r *MenuRepo) tareasBase(ctx context.Context, menuID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT tarea_id FROM menu_tareas_base WHERE menu_id = $1`, menuID)
	if err != nil {
		return nil, fmt.Errorf("tareas base: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tarea base: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
