package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DispositivoService interface {
	Crear(ctx context.Context, actor model.Actor, req dto.CrearDispositivoRequest) (*dto.DispositivoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.DispositivoDetalleResponse, error)
	Listar(ctx context.Context, filtro dto.DispositivoFilter) ([]dto.DispositivoListItem, error)
	AsignarTecnico(ctx context.Context, actor model.Actor, dispositivoID, tecnicoID uint) error
	ActualizarEstado(ctx context.Context, actor model.Actor, dispositivoID uint, estado model.Estado) error
	MarcarEntregado(ctx context.Context, actor model.Actor, dispositivoID uint, precioFinal decimal.Decimal) error
	RevertirEstado(ctx context.Context, actor model.Actor, dispositivoID uint) error
	Eliminar(ctx context.Context, actor model.Actor, dispositivoID uint) error
	AgregarFotos(ctx context.Context, dispositivoID uint, nombres []string) error
}

type dispositivoService struct {
	repo        repository.DispositivoRepository
	usuarioRepo repository.UsuarioRepository
	dispatcher  *worker.Dispatcher
}

func NewDispositivoService(
	repo repository.DispositivoRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
) DispositivoService {
	return &dispositivoService{repo: repo, usuarioRepo: usuarioRepo, dispatcher: dispatcher}
}

// GenerarCodigoSeguimiento derives the public tracking code from the intake
// instant, UTC, second resolution. Two intakes within the same second collide
// on purpose: the unique index rejects the second one instead of silently
// reusing the code.
func GenerarCodigoSeguimiento(ahora time.Time) string {
	return "OT-" + ahora.UTC().Format("20060102150405")
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *dispositivoService) Crear(ctx context.Context, actor model.Actor, req dto.CrearDispositivoRequest) (*dto.DispositivoResponse, error) {
	if !actor.TieneRol(model.RolAdmin, model.RolVendedor) {
		return nil, apperr.Autorizacion("No tienes permiso para registrar dispositivos.")
	}

	ahora := time.Now()
	sucursal := actor.Sucursal
	if sucursal == "" {
		sucursal = model.SucursalPrincipal
	}

	d := &model.Dispositivo{
		CodigoSeguimiento: GenerarCodigoSeguimiento(ahora),
		UsuarioID:         actor.UsuarioID,
		Sucursal:          sucursal,
		Marca:             req.Marca,
		Modelo:            req.Modelo,
		NumeroSerie:       req.NumeroSerie,
		Problema:          req.Problema,
		EstadoActual:      model.EstadoIngresado,
		ClienteNombre:     req.ClienteNombre,
		ClienteDocumento:  req.ClienteDocumento,
		ClienteTelefono:   req.ClienteTelefono,
		ClienteEmail:      req.ClienteEmail,
		FechaRecepcion:    ahora.UTC(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Envolver(apperr.KindConflicto,
				"Código de seguimiento o número de serie ya registrado.", err)
		}
		return nil, err
	}
	return dispositivoToResponse(d), nil
}

func (s *dispositivoService) ObtenerPorID(ctx context.Context, id uint) (*dto.DispositivoDetalleResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}
	resp := &dto.DispositivoDetalleResponse{DispositivoResponse: *dispositivoToResponse(d)}
	for i := range d.Reparaciones {
		resp.Reparaciones = append(resp.Reparaciones, *reparacionToResponse(&d.Reparaciones[i]))
	}
	return resp, nil
}

// ── Listar ────────────────────────────────────────────────────────────────────
// The repository narrows by search term; the priority ranking runs here so it
// stays a pure, unit-testable function of the result set.

func (s *dispositivoService) Listar(ctx context.Context, filtro dto.DispositivoFilter) ([]dto.DispositivoListItem, error) {
	dispositivos, err := s.repo.Buscar(ctx, filtro.Query)
	if err != nil {
		return nil, err
	}

	ahora := time.Now().UTC()
	ordenarPorPrioridad(dispositivos, ahora)

	items := make([]dto.DispositivoListItem, 0, len(dispositivos))
	for i := range dispositivos {
		d := &dispositivos[i]
		item := dto.DispositivoListItem{
			ID:                d.ID,
			CodigoSeguimiento: d.CodigoSeguimiento,
			ClienteNombre:     d.ClienteNombre,
			Marca:             d.Marca,
			Modelo:            d.Modelo,
			EstadoActual:      d.EstadoActual.String(),
			FechaRecepcion:    d.FechaRecepcion.Format(time.RFC3339),
			Prioridad:         nivelPrioridad(d, ahora),
		}
		if fin := d.UltimaReparacionTerminada(); fin != nil {
			f := fin.Format(time.RFC3339)
			item.UltimaTerminada = &f
		}
		items = append(items, item)
	}
	return items, nil
}

// nivelPrioridad classifies a device for the staff list:
//
//	0 — Terminado, last completed repair within the pickup window (urgent)
//	1 — Terminado, last completed repair older than the window (overdue)
//	2 — everything else, including Terminado with no completed repair
func nivelPrioridad(d *model.Dispositivo, ahora time.Time) int {
	if d.EstadoActual != model.EstadoTerminado {
		return 2
	}
	fin := d.UltimaReparacionTerminada()
	if fin == nil {
		return 2
	}
	if ahora.Sub(*fin) <= DiasGarantia*24*time.Hour {
		return 0
	}
	return 1
}

// ordenarPorPrioridad sorts ascending by tier, then by the last completed
// repair date ascending (most overdue first); devices without one go last
// within their tier.
func ordenarPorPrioridad(dispositivos []model.Dispositivo, ahora time.Time) {
	type fila struct {
		d     model.Dispositivo
		nivel int
		fin   *time.Time
	}
	filas := make([]fila, 0, len(dispositivos))
	for i := range dispositivos {
		filas = append(filas, fila{
			d:     dispositivos[i],
			nivel: nivelPrioridad(&dispositivos[i], ahora),
			fin:   dispositivos[i].UltimaReparacionTerminada(),
		})
	}
	sort.SliceStable(filas, func(i, j int) bool {
		a, b := filas[i], filas[j]
		if a.nivel != b.nivel {
			return a.nivel < b.nivel
		}
		switch {
		case a.fin == nil:
			return false
		case b.fin == nil:
			return true
		default:
			return a.fin.Before(*b.fin)
		}
	})
	for i := range filas {
		dispositivos[i] = filas[i].d
	}
}

// ── Transiciones de estado ────────────────────────────────────────────────────

func (s *dispositivoService) AsignarTecnico(ctx context.Context, actor model.Actor, dispositivoID, tecnicoID uint) error {
	if !actor.TieneRol(model.RolAdmin, model.RolAdministrativo) {
		return apperr.Autorizacion("No tienes permiso para asignar un técnico.")
	}
	if _, err := s.repo.FindByID(ctx, dispositivoID); err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}
	tecnico, err := s.usuarioRepo.FindByID(ctx, tecnicoID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Técnico no encontrado.", err)
	}
	if tecnico.Rol != model.RolTecnico {
		return apperr.Validacion("El usuario seleccionado no es un técnico.")
	}

	// (Re)asignar siempre fuerza Observacion, venga de donde venga.
	return s.repo.ActualizarCampos(ctx, dispositivoID, map[string]interface{}{
		"tecnico_asignado_id": tecnicoID,
		"estado_actual":       model.EstadoObservacion,
	})
}

func (s *dispositivoService) ActualizarEstado(ctx context.Context, actor model.Actor, dispositivoID uint, estado model.Estado) error {
	if !actor.TieneRol(model.RolAdmin, model.RolAdministrativo, model.RolTecnico) {
		return apperr.Autorizacion("No tienes permiso para cambiar el estado.")
	}
	if !estado.Valido() {
		return apperr.Validacion("Estado inválido.")
	}
	// Los técnicos sólo operan el tramo medio del ciclo de vida; pedir otro
	// estado es un problema de permisos, no de formato.
	if actor.Rol == model.RolTecnico && !estado.PermitidoParaTecnico() {
		return apperr.Autorizacion("Un técnico solo puede cambiar el estado a Observación, Reparación o Terminado.")
	}

	d, err := s.repo.FindByID(ctx, dispositivoID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}

	if err := s.repo.ActualizarCampos(ctx, dispositivoID, map[string]interface{}{
		"estado_actual": estado,
	}); err != nil {
		return err
	}

	if estado == model.EstadoTerminado {
		s.notificarListo(ctx, d)
	}
	return nil
}

func (s *dispositivoService) MarcarEntregado(ctx context.Context, actor model.Actor, dispositivoID uint, precioFinal decimal.Decimal) error {
	if !actor.TieneRol(model.RolAdmin, model.RolVendedor) {
		return apperr.Autorizacion("No tienes permiso para marcar un dispositivo como entregado.")
	}
	if precioFinal.IsNegative() {
		return apperr.Validacion("El precio final debe ser un número válido.")
	}

	d, err := s.repo.FindByID(ctx, dispositivoID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}
	// Un segundo cobro pisaría el primero: solo se re-entrega tras revertir.
	if d.EstadoActual == model.EstadoRetirado {
		return apperr.Conflicto("El dispositivo ya fue entregado; revierte el estado antes de volver a entregarlo.")
	}

	return s.repo.ActualizarCampos(ctx, dispositivoID, map[string]interface{}{
		"estado_actual": model.EstadoRetirado,
		"precio_final":  precioFinal,
		"fecha_entrega": time.Now().UTC(),
	})
}

func (s *dispositivoService) RevertirEstado(ctx context.Context, actor model.Actor, dispositivoID uint) error {
	if !actor.EsAdmin() {
		return apperr.Autorizacion("No tienes permiso para revertir el estado del dispositivo.")
	}
	d, err := s.repo.FindByID(ctx, dispositivoID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}
	if d.EstadoActual != model.EstadoRetirado {
		return apperr.Conflicto("Solo un dispositivo entregado puede revertirse a Terminado.")
	}

	return s.repo.ActualizarCampos(ctx, dispositivoID, map[string]interface{}{
		"estado_actual": model.EstadoTerminado,
		"precio_final":  nil,
		"fecha_entrega": nil,
	})
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Cascade delete: usage rows, photos, repairs, then the device — one
// transaction, all or nothing.

func (s *dispositivoService) Eliminar(ctx context.Context, actor model.Actor, dispositivoID uint) error {
	if !actor.EsAdmin() {
		return apperr.Autorizacion("No tienes permiso para eliminar dispositivos.")
	}
	if _, err := s.repo.FindByID(ctx, dispositivoID); err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteUsosTx(tx, dispositivoID); err != nil {
			return err
		}
		if err := s.repo.DeleteFotosTx(tx, dispositivoID); err != nil {
			return err
		}
		if err := s.repo.DeleteReparacionesTx(tx, dispositivoID); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, dispositivoID)
	})
}

func (s *dispositivoService) AgregarFotos(ctx context.Context, dispositivoID uint, nombres []string) error {
	d, err := s.repo.FindByID(ctx, dispositivoID)
	if err != nil {
		return apperr.Envolver(apperr.KindNoEncontrado, "Dispositivo no encontrado.", err)
	}
	base := len(d.Fotos)
	fotos := make([]model.Foto, 0, len(nombres))
	for i, nombre := range nombres {
		id := dispositivoID
		fotos = append(fotos, model.Foto{
			DispositivoID: &id,
			NombreArchivo: nombre,
			Posicion:      base + i,
		})
	}
	return s.repo.CrearFotos(ctx, fotos)
}

// notificarListo enqueues the "listo para retirar" email. Best effort: a
// full queue or missing dispatcher never fails the state change.
func (s *dispositivoService) notificarListo(ctx context.Context, d *model.Dispositivo) {
	if s.dispatcher == nil || d.ClienteEmail == nil || *d.ClienteEmail == "" {
		return
	}
	_ = s.dispatcher.EnqueueAviso(ctx, worker.AvisoJobPayload{
		Para:              *d.ClienteEmail,
		ClienteNombre:     d.ClienteNombre,
		CodigoSeguimiento: d.CodigoSeguimiento,
		Marca:             d.Marca,
		Modelo:            d.Modelo,
	})
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func dispositivoToResponse(d *model.Dispositivo) *dto.DispositivoResponse {
	resp := &dto.DispositivoResponse{
		ID:                d.ID,
		CodigoSeguimiento: d.CodigoSeguimiento,
		Sucursal:          d.Sucursal,
		Marca:             d.Marca,
		Modelo:            d.Modelo,
		NumeroSerie:       d.NumeroSerie,
		Problema:          d.Problema,
		EstadoActual:      d.EstadoActual.String(),
		ClienteNombre:     d.ClienteNombre,
		ClienteDocumento:  d.ClienteDocumento,
		ClienteTelefono:   d.ClienteTelefono,
		ClienteEmail:      d.ClienteEmail,
		FechaRecepcion:    d.FechaRecepcion.Format(time.RFC3339),
		PrecioFinal:       d.PrecioFinal,
		TecnicoAsignadoID: d.TecnicoAsignadoID,
		Fotos:             nombresDeFotos(d.Fotos),
	}
	if d.FechaEntrega != nil {
		f := d.FechaEntrega.Format(time.RFC3339)
		resp.FechaEntrega = &f
	}
	return resp
}

func nombresDeFotos(fotos []model.Foto) []string {
	nombres := make([]string, 0, len(fotos))
	for _, f := range fotos {
		nombres = append(nombres, f.NombreArchivo)
	}
	return nombres
}
