package repository

import (
	"context"

	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
)

// MenuRepository define el puerto de persistencia para Menu (DIP).
// GetByID devuelve (nil, nil) si el menú no existe. TareasBase siempre viene
// poblado en las lecturas.
type MenuRepository interface {
	Create(ctx context.Context, m *entity.Menu) error
	GetByID(ctx context.Context, id string) (*entity.Menu, error)
	List(ctx context.Context) ([]*entity.Menu, error)
	Update(ctx context.Context, m *entity.Menu) error
	Delete(ctx context.Context, id string) error
	// AgregarTareaBase registra la referencia débil menú -> tarea.
	AgregarTareaBase(ctx context.Context, menuID, tareaID string) error
	// QuitarTareaBase elimina la referencia; no falla si no existía.
	QuitarTareaBase(ctx context.Context, menuID, tareaID string) error
}
