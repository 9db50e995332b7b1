package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eskimo/internal/config"
	"eskimo/internal/dto"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uint) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg, now: time.Now}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, normalizarEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		ID:    user.ID,
		Name:  user.Nombre,
		Email: user.Email,
		Role:  user.Rol,
		Token: token,
	}, nil
}

// generateToken signs the session JWT. The auth middleware reads user_id,
// name and rol back from it.
func (s *authService) generateToken(user *model.Usuario) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Nombre,
		"rol":     user.Rol,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nombre:       strings.TrimSpace(req.Name),
		Email:        normalizarEmail(req.Email),
		PasswordHash: string(hash),
		Rol:          req.Role,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if esDuplicado(err) {
			return nil, fmt.Errorf("%w: el email %s ya esta registrado", ErrConflicto, user.Email)
		}
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "usuario", id)
	}
	if req.Name != "" {
		user.Nombre = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		user.Email = normalizarEmail(req.Email)
	}
	if req.Role != "" {
		user.Rol = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		if esDuplicado(err) {
			return nil, fmt.Errorf("%w: el email %s ya esta registrado", ErrConflicto, user.Email)
		}
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uint) error {
	return noEncontrado(s.repo.SoftDelete(ctx, id), "usuario", id)
}

func normalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:     u.ID,
		Name:   u.Nombre,
		Email:  u.Email,
		Role:   u.Rol,
		Activo: u.Activo,
	}
}
