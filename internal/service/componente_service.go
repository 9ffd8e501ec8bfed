package service

import (
	"context"
	"errors"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"

	"gorm.io/gorm"
)

type ComponenteService interface {
	Crear(ctx context.Context, actor model.Actor, req dto.CrearComponenteRequest) (*dto.ComponenteResponse, error)
	Listar(ctx context.Context) ([]dto.ComponenteResponse, error)
	ListarDisponibles(ctx context.Context) ([]dto.ComponenteResponse, error)
}

type componenteService struct {
	repo repository.ComponenteRepository
}

func NewComponenteService(repo repository.ComponenteRepository) ComponenteService {
	return &componenteService{repo: repo}
}

func (s *componenteService) Crear(ctx context.Context, actor model.Actor, req dto.CrearComponenteRequest) (*dto.ComponenteResponse, error) {
	if !actor.TieneRol(model.RolAdmin, model.RolAdministrativo) {
		return nil, apperr.Autorizacion("No tienes permiso para agregar componentes.")
	}
	if req.StockCantidad < 0 {
		return nil, apperr.Validacion("El stock inicial no puede ser negativo.")
	}

	c := &model.Componente{
		Nombre:        req.Nombre,
		StockCantidad: req.StockCantidad,
		Precio:        req.Precio,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Envolver(apperr.KindConflicto,
				"Ya existe un componente con ese nombre.", err)
		}
		return nil, err
	}
	return componenteToResponse(c), nil
}

func (s *componenteService) Listar(ctx context.Context) ([]dto.ComponenteResponse, error) {
	componentes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return componentesToResponse(componentes), nil
}

func (s *componenteService) ListarDisponibles(ctx context.Context) ([]dto.ComponenteResponse, error) {
	componentes, err := s.repo.ListDisponibles(ctx)
	if err != nil {
		return nil, err
	}
	return componentesToResponse(componentes), nil
}

func componenteToResponse(c *model.Componente) *dto.ComponenteResponse {
	return &dto.ComponenteResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		StockCantidad: c.StockCantidad,
		Precio:        c.Precio,
	}
}

func componentesToResponse(componentes []model.Componente) []dto.ComponenteResponse {
	out := make([]dto.ComponenteResponse, 0, len(componentes))
	for i := range componentes {
		out = append(out, *componenteToResponse(&componentes[i]))
	}
	return out
}
