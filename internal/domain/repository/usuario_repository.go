package repository

import (
	"context"

	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Los métodos devuelven (nil, nil) cuando el usuario no existe.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error
	List(ctx context.Context) ([]*entity.Usuario, error)
	Delete(ctx context.Context, id string) error
}
