package service

import (
	"context"
	"fmt"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReparacionService interface {
	Agregar(ctx context.Context, actor model.Actor, dispositivoID uint, req dto.CrearReparacionRequest) (*dto.ReparacionResponse, error)
	ConsumirComponente(ctx context.Context, actor model.Actor, reparacionID uint, req dto.ConsumirComponenteRequest) (*dto.ReparacionResponse, error)
	EditarCosto(ctx context.Context, actor model.Actor, reparacionID uint, costo decimal.Decimal) error
	EditarPrecio(ctx context.Context, actor model.Actor, reparacionID uint, precio decimal.Decimal) error
	AgregarFoto(ctx context.Context, reparacionID uint, nombre string) error
}

type reparacionService struct {
	repo            repository.ReparacionRepository
	dispositivoRepo repository.DispositivoRepository
	componenteRepo  repository.ComponenteRepository
	dispatcher      *worker.Dispatcher
}

func NewReparacionService(
	repo repository.ReparacionRepository,
	dispositivoRepo repository.DispositivoRepository,
	componenteRepo repository.ComponenteRepository,
	dispatcher *worker.Dispatcher,
) ReparacionService {
	return &reparacionService{
		repo:            repo,
		dispositivoRepo: dispositivoRepo,
		componenteRepo:  componenteRepo,
		dispatcher:      dispatcher,
	}
}

// ── Agregar ───────────────────────────────────────────────────────────────────
// The new repair is the source of truth for the device header: its status is
// echoed into Dispositivo.EstadoActual within the same transaction.

func (s *reparacionService) Agregar(ctx context.Context, actor model.Actor, dispositivoID uint, req dto.CrearReparacionRequest) (*dto.ReparacionResponse, error) {
	if !actor.TieneRol(model.RolAdmin, model.RolAdministrativo, model.RolTecnico) {
		return nil, apperr.Autorizacion("No tienes permiso para agregar reparaciones.")
	}

	estado := model.Estado(req.Estado)
	if !estado.Valido() {
		return nil, apperr.Validacion("Estado de reparación inválido.")
	}
	if actor.Rol == model.RolTecnico && !estado.PermitidoParaTecnico() {
		return nil, apperr.Autorizacion("Un técnico solo puede cambiar el estado a Observación, Reparación o Terminado.")
	}

	dispositivo, err := s.dispositivoRepo.FindByID(ctx, dispositivoID)
	if err != nil {
		return nil, apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}

	ahora := time.Now().UTC()
	rep := &model.Reparacion{
		DispositivoID: dispositivoID,
		Descripcion:   req.Descripcion,
		Estado:        estado,
		FechaInicio:   ahora,
		Notas:         req.Notas,
		Costo:         decimal.Zero,
		PrecioCliente: decimal.Zero,
	}
	if req.Costo != nil {
		rep.Costo = *req.Costo
	}
	if req.PrecioCliente != nil {
		rep.PrecioCliente = *req.PrecioCliente
	}
	if estado == model.EstadoTerminado {
		rep.FechaFin = &ahora
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, rep); err != nil {
			return err
		}
		return s.repo.ActualizarEstadoDispositivoTx(tx, dispositivoID, map[string]interface{}{
			"estado_actual": estado,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	if estado == model.EstadoTerminado && s.dispatcher != nil &&
		dispositivo.ClienteEmail != nil && *dispositivo.ClienteEmail != "" {
		_ = s.dispatcher.EnqueueAviso(ctx, worker.AvisoJobPayload{
			Para:              *dispositivo.ClienteEmail,
			ClienteNombre:     dispositivo.ClienteNombre,
			CodigoSeguimiento: dispositivo.CodigoSeguimiento,
			Marca:             dispositivo.Marca,
			Modelo:            dispositivo.Modelo,
		})
	}

	return reparacionToResponse(rep), nil
}

// ── ConsumirComponente ────────────────────────────────────────────────────────
// Four mutations, one transaction: guarded stock decrement, usage-row upsert
// (accumulating, never duplicating the pair), additive cost increment. Any
// failure rolls everything back.

func (s *reparacionService) ConsumirComponente(ctx context.Context, actor model.Actor, reparacionID uint, req dto.ConsumirComponenteRequest) (*dto.ReparacionResponse, error) {
	if !actor.TieneRol(model.RolAdmin, model.RolTecnico) {
		return nil, apperr.Autorizacion("No tienes permiso para gestionar componentes.")
	}
	if req.CantidadUsada <= 0 {
		return nil, apperr.Validacion("La cantidad debe ser un entero positivo.")
	}

	if _, err := s.repo.FindByID(ctx, reparacionID); err != nil {
		return nil, apperr.Envolver(apperr.KindNoEncontrado, "Reparación no encontrada.", err)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		componente, err := s.componenteRepo.FindByIDTx(tx, req.ComponenteID)
		if err != nil {
			return apperr.Envolver(apperr.KindNoEncontrado, "Componente no encontrado.", err)
		}

		alcanzo, err := s.componenteRepo.DescontarStockTx(tx, req.ComponenteID, req.CantidadUsada)
		if err != nil {
			return err
		}
		if !alcanzo {
			return apperr.StockInsuficiente(fmt.Sprintf(
				"Stock insuficiente de %s: quedan %d unidad(es).",
				componente.Nombre, componente.StockCantidad))
		}

		if _, err := s.repo.FindUsoTx(tx, reparacionID, req.ComponenteID); err == nil {
			if err := s.repo.IncrementarUsoTx(tx, reparacionID, req.ComponenteID, req.CantidadUsada); err != nil {
				return err
			}
		} else {
			uso := &model.ReparacionComponente{
				ReparacionID:  reparacionID,
				ComponenteID:  req.ComponenteID,
				CantidadUsada: req.CantidadUsada,
			}
			if err := s.repo.CreateUsoTx(tx, uso); err != nil {
				return err
			}
		}

		monto := componente.Precio.Mul(decimal.NewFromInt(int64(req.CantidadUsada)))
		return s.repo.IncrementarCostoTx(tx, reparacionID, monto)
	})
	if txErr != nil {
		return nil, txErr
	}

	rep, err := s.repo.FindByID(ctx, reparacionID)
	if err != nil {
		return nil, err
	}
	return reparacionToResponse(rep), nil
}

// ── Ediciones directas (solo admin) ───────────────────────────────────────────

func (s *reparacionService) EditarCosto(ctx context.Context, actor model.Actor, reparacionID uint, costo decimal.Decimal) error {
	if !actor.EsAdmin() {
		return apperr.Autorizacion("No tienes permiso para editar el costo.")
	}
	if costo.IsNegative() {
		return apperr.Validacion("El costo debe ser un número válido.")
	}
	if _, err := s.repo.FindByID(ctx, reparacionID); err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Reparación no encontrada.", err)
	}
	return s.repo.ActualizarCosto(ctx, reparacionID, costo)
}

func (s *reparacionService) EditarPrecio(ctx context.Context, actor model.Actor, reparacionID uint, precio decimal.Decimal) error {
	if !actor.EsAdmin() {
		return apperr.Autorizacion("No tienes permiso para editar el precio.")
	}
	if precio.IsNegative() {
		return apperr.Validacion("El precio debe ser un número válido.")
	}
	if _, err := s.repo.FindByID(ctx, reparacionID); err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Reparación no encontrada.", err)
	}
	return s.repo.ActualizarPrecio(ctx, reparacionID, precio)
}

func (s *reparacionService) AgregarFoto(ctx context.Context, reparacionID uint, nombre string) error {
	rep, err := s.repo.FindByID(ctx, reparacionID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Reparación no encontrada.", err)
	}
	id := reparacionID
	return s.repo.CrearFotos(ctx, []model.Foto{{
		ReparacionID:  &id,
		NombreArchivo: nombre,
		Posicion:      len(rep.Fotos),
	}})
}

func reparacionToResponse(r *model.Reparacion) *dto.ReparacionResponse {
	resp := &dto.ReparacionResponse{
		ID:            r.ID,
		DispositivoID: r.DispositivoID,
		Descripcion:   r.Descripcion,
		Estado:        r.Estado.String(),
		FechaInicio:   r.FechaInicio.Format(time.RFC3339),
		Notas:         r.Notas,
		Costo:         r.Costo,
		PrecioCliente: r.PrecioCliente,
		Fotos:         nombresDeFotos(r.Fotos),
	}
	if r.FechaFin != nil {
		f := r.FechaFin.Format(time.RFC3339)
		resp.FechaFin = &f
	}
	for _, uso := range r.Componentes {
		item := dto.ComponenteUsadoResponse{
			ComponenteID:  uso.ComponenteID,
			CantidadUsada: uso.CantidadUsada,
		}
		if uso.Componente != nil {
			item.Nombre = uso.Componente.Nombre
			item.PrecioUnitario = uso.Componente.Precio
		}
		resp.Componentes = append(resp.Componentes, item)
	}
	return resp
}
