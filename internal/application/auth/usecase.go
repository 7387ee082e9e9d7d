package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
	"github.com/MarcoDimanghene/backcocinagus/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: registro, login, renovación y
// administración de usuarios.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt, persiste y emite un
// token. Devuelve ErrDuplicate si el username ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	existing, err := uc.usuarioRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolUser
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, UID: u.ID, Username: u.Username, Rol: u.Rol}, nil
}

// Login verifica username/password y genera el JWT. Credenciales incorrectas
// devuelven ErrUnauthorized; usuario inactivo, ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, UID: u.ID, Username: u.Username, Rol: u.Rol}, nil
}

// Renew emite un token nuevo para un usuario ya autenticado.
func (uc *AuthUseCase) Renew(ctx context.Context, uid string) (*dto.RenewResponse, error) {
	u, err := uc.usuarioRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RenewResponse{Token: token, UID: u.ID, Username: u.Username}, nil
}

// ChangePassword reemplaza la contraseña del usuario indicado.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, id, nueva string) error {
	u, err := uc.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(nueva), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return uc.usuarioRepo.Update(ctx, u)
}

// ChangeState activa o desactiva un usuario.
func (uc *AuthUseCase) ChangeState(ctx context.Context, id string, activo bool) error {
	u, err := uc.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	u.Activo = activo
	u.UpdatedAt = time.Now()
	return uc.usuarioRepo.Update(ctx, u)
}

// EditUser edición parcial: solo los campos presentes sobrescriben.
func (uc *AuthUseCase) EditUser(ctx context.Context, id string, in dto.EditUserRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	if in.Username != nil && *in.Username != "" {
		u.Username = *in.Username
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.Rol != nil && *in.Rol != "" {
		if !entity.RolValido(*in.Rol) {
			return nil, domain.ErrBadRequest
		}
		u.Rol = *in.Rol
	}
	u.UpdatedAt = time.Now()
	if err := uc.usuarioRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// DeleteUser elimina un usuario por ID.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, id string) error {
	u, err := uc.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNoEncontrado
	}
	return uc.usuarioRepo.Delete(ctx, id)
}

// ListUsers lista todos los usuarios sin hash, ordenados por username.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]*dto.UsuarioResponse, error) {
	usuarios, err := uc.usuarioRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, toUsuarioResponse(u))
	}
	return out, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Username:  u.Username,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
