package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
)

var _ repository.TareaRepository = (*TareaRepo)(nil)

// TareaRepo implementación del puerto TareaRepository sobre PostgreSQL.
type TareaRepo struct {
	q Querier
}

// NewTareaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTareaRepository(q Querier) *TareaRepo {
	return &TareaRepo{q: q}
}

const tareaCols = `id, nombre, descripcion, menu_id, responsable, estado, prioridad,
		fecha_ejecucion, created_at, updated_at, hora_inicio, hora_fin`

const insertTarea = `
	INSERT INTO tareas (` + tareaCols + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Create persiste una nueva tarea.
func (r *TareaRepo) Create(ctx context.Context, t *entity.Tarea) error {
	_, err := r.q.Exec(ctx, insertTarea, tareaArgs(t)...)
	if err != nil {
		return fmt.Errorf("insert tarea: %w", err)
	}
	return nil
}

// CreateBatch inserta el lote completo. La atomicidad la da la transacción
// del llamador (TxRunner); sobre el pool las filas se insertan una a una.
func (r *TareaRepo) CreateBatch(ctx context.Context, ts []*entity.Tarea) error {
	for _, t := range ts {
		if _, err := r.q.Exec(ctx, insertTarea, tareaArgs(t)...); err != nil {
			return fmt.Errorf("insert lote de tareas: %w", err)
		}
	}
	return nil
}

func tareaArgs(t *entity.Tarea) []any {
	return []any{
		t.ID, t.Nombre, t.Descripcion, t.MenuID, t.Responsable, t.Estado, t.Prioridad,
		t.FechaEjecucion, t.CreatedAt, t.UpdatedAt, t.HoraInicio, t.HoraFin,
	}
}

// GetByID obtiene una tarea por ID, (nil, nil) si no existe.
func (r *TareaRepo) GetByID(ctx context.Context, id string) (*entity.Tarea, error) {
	query := `SELECT ` + tareaCols + ` FROM tareas WHERE id = $1`
	var t entity.Tarea
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Nombre, &t.Descripcion, &t.MenuID, &t.Responsable, &t.Estado, &t.Prioridad,
		&t.FechaEjecucion, &t.CreatedAt, &t.UpdatedAt, &t.HoraInicio, &t.HoraFin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tarea: %w", err)
	}
	return &t, nil
}

// GetByIDs obtiene varias tareas; los IDs inexistentes se omiten.
func (r *TareaRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Tarea, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + tareaCols + ` FROM tareas WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get tareas por ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tarea
	for rows.Next() {
		var t entity.Tarea
		if err := rows.Scan(
			&t.ID, &t.Nombre, &t.Descripcion, &t.MenuID, &t.Responsable, &t.Estado, &t.Prioridad,
			&t.FechaEjecucion, &t.CreatedAt, &t.UpdatedAt, &t.HoraInicio, &t.HoraFin,
		); err != nil {
			return nil, fmt.Errorf("scan tarea: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// GetDetalleByID obtiene la tarea con las proyecciones de responsable y menú.
func (r *TareaRepo) GetDetalleByID(ctx context.Context, id string) (*entity.TareaDetalle, error) {
	query := detalleSelect + ` WHERE t.id = $1`
	row := r.q.QueryRow(ctx, query, id)
	d, err := scanDetalle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tarea detalle: %w", err)
	}
	return d, nil
}

// Update actualiza una tarea completa.
func (r *TareaRepo) Update(ctx context.Context, t *entity.Tarea) error {
	query := `
		UPDATE tareas SET nombre = $2, descripcion = $3, menu_id = $4, responsable = $5,
			estado = $6, prioridad = $7, fecha_ejecucion = $8, updated_at = $9,
			hora_inicio = $10, hora_fin = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Nombre, t.Descripcion, t.MenuID, t.Responsable, t.Estado, t.Prioridad,
		t.FechaEjecucion, t.UpdatedAt, t.HoraInicio, t.HoraFin,
	)
	if err != nil {
		return fmt.Errorf("update tarea: %w", err)
	}
	return nil
}

// Delete elimina una tarea por ID.
func (r *TareaRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tareas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tarea: %w", err)
	}
	return nil
}

// TomarPendiente es el check-then-set atómico de take(): una sola sentencia
// condicional, de modo que dos actores concurrentes nunca reclaman la misma
// tarea. Devuelve false si la tarea no estaba PENDIENTE (o no existe).
func (r *TareaRepo) TomarPendiente(ctx context.Context, id, actorID string, ahora time.Time) (bool, error) {
	query := `
		UPDATE tareas SET estado = $3, responsable = $2, updated_at = $4
		WHERE id = $1 AND estado = $5`
	tag, err := r.q.Exec(ctx, query, id, actorID, entity.EstadoAsignada, ahora, entity.EstadoPendiente)
	if err != nil {
		return false, fmt.Errorf("tomar tarea: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// PurgarCreadasAntes elimina toda tarea creada antes del corte, sin importar
// su estado. Devuelve cuántas eliminó.
func (r *TareaRepo) PurgarCreadasAntes(ctx context.Context, corte time.Time) (int64, error) {
	// Las referencias en menu_tareas_base caen por cascada.
	tag, err := r.q.Exec(ctx, `DELETE FROM tareas WHERE created_at < $1`, corte)
	if err != nil {
		return 0, fmt.Errorf("purgar tareas: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ExpirarProgramadasAntes pasa a VENCIDA toda tarea no terminal con fecha de
// ejecución anterior al corte. Con actorID vacío conserva el responsable.
func (r *TareaRepo) ExpirarProgramadasAntes(ctx context.Context, corte time.Time, actorID string, ahora time.Time) (int64, error) {
	query := `
		UPDATE tareas
		SET estado = $3, responsable = COALESCE(NULLIF($2, ''), responsable), updated_at = $4
		WHERE fecha_ejecucion < $1 AND estado = ANY($5)`
	noTerminales := []string{
		string(entity.EstadoPendiente),
		string(entity.EstadoAsignada),
		string(entity.EstadoEnProceso),
	}
	tag, err := r.q.Exec(ctx, query, corte, actorID, entity.EstadoVencida, ahora, noTerminales)
	if err != nil {
		return 0, fmt.Errorf("expirar tareas: %w", err)
	}
	return tag.RowsAffected(), nil
}

const detalleSelect = `
	SELECT t.id, t.nombre, t.descripcion, t.menu_id, t.responsable, t.estado, t.prioridad,
		t.fecha_ejecucion, t.created_at, t.updated_at, t.hora_inicio, t.hora_fin,
		u.id, u.username, u.rol,
		m.id, m.nombre
	FROM tareas t
	LEFT JOIN usuarios u ON u.id = t.responsable
	LEFT JOIN menus m ON m.id = t.menu_id`

// List consulta con filtros opcionales y devuelve las tareas con sus
// proyecciones denormalizadas de responsable y menú.
func (r *TareaRepo) List(ctx context.Context, f repository.TareaFilter) ([]*entity.TareaDetalle, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Estado != nil {
		where = append(where, "t.estado = "+arg(*f.Estado))
	}
	if f.Responsable != nil {
		where = append(where, "t.responsable = "+arg(*f.Responsable))
	}
	if f.FechaInicio != nil {
		where = append(where, "t.fecha_ejecucion >= "+arg(*f.FechaInicio))
	}
	if f.FechaFin != nil {
		where = append(where, "t.fecha_ejecucion <= "+arg(*f.FechaFin))
	}

	query := detalleSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	switch f.Orden {
	case repository.OrdenDia:
		query += ` ORDER BY ` + prioridadPesoT + ` DESC, t.nombre ASC`
	default:
		query += ` ORDER BY t.fecha_ejecucion DESC, ` + prioridadPesoT + ` DESC, t.nombre ASC`
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tareas: %w", err)
	}
	defer rows.Close()

	var list []*entity.TareaDetalle
	for rows.Next() {
		d, err := scanDetalle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tarea detalle: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// prioridadPesoT es prioridadPeso calificado con el alias t del listado.
const prioridadPesoT = `CASE t.prioridad WHEN 'ALTA' THEN 3 WHEN 'MEDIA' THEN 2 ELSE 1 END`

func scanDetalle(row pgx.Row) (*entity.TareaDetalle, error) {
	var d entity.TareaDetalle
	var uID, uUsername, uRol *string
	var mID, mNombre *string
	err := row.Scan(
		&d.ID, &d.Nombre, &d.Descripcion, &d.MenuID, &d.Responsable, &d.Estado, &d.Prioridad,
		&d.FechaEjecucion, &d.CreatedAt, &d.UpdatedAt, &d.HoraInicio, &d.HoraFin,
		&uID, &uUsername, &uRol,
		&mID, &mNombre,
	)
	if err != nil {
		return nil, err
	}
	if uID != nil {
		d.ResponsableInfo = &entity.UsuarioResumen{ID: *uID, Username: *uUsername, Rol: *uRol}
	}
	if mID != nil {
		d.MenuInfo = &entity.MenuResumen{ID: *mID, Nombre: *mNombre}
	}
	return &d, nil
}
