package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/config"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, actor model.Actor, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, actor model.Actor) ([]dto.UsuarioResponse, error)
	ListarTecnicos(ctx context.Context) ([]dto.UsuarioResponse, error)
	CambiarPassword(ctx context.Context, actor model.Actor, usuarioID uint, nuevaPassword string) error
	EliminarUsuario(ctx context.Context, actor model.Actor, usuarioID uint) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperr.Autorizacion("Nombre de usuario o contraseña incorrectos.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Autorizacion("Nombre de usuario o contraseña incorrectos.")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Autorizacion("Refresh token inválido o expirado.")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Autorizacion("Token mal formado.")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperr.Autorizacion("Token mal formado.")
	}

	user, err := s.repo.FindByID(ctx, uint(userIDFloat))
	if err != nil {
		return nil, apperr.Autorizacion("Usuario no encontrado.")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) generateToken(u *model.Usuario, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"rol":      u.Rol,
		"sucursal": u.Sucursal,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ── Gestión de usuarios (solo admin) ─────────────────────────────────────────

func (s *authService) CrearUsuario(ctx context.Context, actor model.Actor, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if !actor.EsAdmin() {
		return nil, apperr.Autorizacion("No tienes permiso para gestionar usuarios.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	sucursal := req.Sucursal
	if sucursal == "" {
		sucursal = model.SucursalPrincipal
	}

	u := &model.Usuario{
		Username:     req.Username,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Sucursal:     sucursal,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Envolver(apperr.KindConflicto,
				fmt.Sprintf("El usuario %q ya existe.", req.Username), err)
		}
		return nil, err
	}
	resp := usuarioToResponse(u)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context, actor model.Actor) ([]dto.UsuarioResponse, error) {
	if !actor.EsAdmin() {
		return nil, apperr.Autorizacion("No tienes permiso para gestionar usuarios.")
	}
	usuarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return usuariosToResponse(usuarios), nil
}

func (s *authService) ListarTecnicos(ctx context.Context) ([]dto.UsuarioResponse, error) {
	tecnicos, err := s.repo.FindByRol(ctx, model.RolTecnico)
	if err != nil {
		return nil, err
	}
	return usuariosToResponse(tecnicos), nil
}

func (s *authService) CambiarPassword(ctx context.Context, actor model.Actor, usuarioID uint, nuevaPassword string) error {
	if !actor.EsAdmin() {
		return apperr.Autorizacion("No tienes permiso para cambiar contraseñas.")
	}
	if nuevaPassword == "" {
		return apperr.Validacion("La nueva contraseña no puede estar vacía.")
	}
	u, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Usuario no encontrado.", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(nuevaPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.repo.Update(ctx, u)
}

// EliminarUsuario removes a user. Devices they registered are reassigned to
// the acting admin; their technician assignments are cleared. The whole
// reassignment + delete is one transaction.
func (s *authService) EliminarUsuario(ctx context.Context, actor model.Actor, usuarioID uint) error {
	if !actor.EsAdmin() {
		return apperr.Autorizacion("No tienes permiso para gestionar usuarios.")
	}
	objetivo, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Usuario no encontrado.", err)
	}
	if objetivo.Username == "Admin" || objetivo.ID == actor.UsuarioID {
		return apperr.Conflicto("No se puede eliminar un usuario administrador o a ti mismo.")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ReasignarRegistradosTx(tx, usuarioID, actor.UsuarioID); err != nil {
			return err
		}
		if err := s.repo.DesasignarTecnicoTx(tx, usuarioID); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, usuarioID)
	})
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID,
		Username: u.Username,
		Rol:      u.Rol,
		Sucursal: u.Sucursal,
	}
}

func usuariosToResponse(usuarios []model.Usuario) []dto.UsuarioResponse {
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, usuarioToResponse(&usuarios[i]))
	}
	return out
}
