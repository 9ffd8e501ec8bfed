package service

import (
	"context"
	"fmt"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"

	"github.com/shopspring/decimal"
)

type ReporteService interface {
	Ingresos(ctx context.Context, actor model.Actor) (*dto.ReporteIngresosResponse, error)
}

type reporteService struct {
	dispositivoRepo repository.DispositivoRepository
}

func NewReporteService(dispositivoRepo repository.DispositivoRepository) ReporteService {
	return &reporteService{dispositivoRepo: dispositivoRepo}
}

func (s *reporteService) Ingresos(ctx context.Context, actor model.Actor) (*dto.ReporteIngresosResponse, error) {
	if !actor.TieneRol(model.RolAdmin, model.RolAdministrativo) {
		return nil, apperr.Autorizacion("No tienes permiso para ver el reporte de ingresos.")
	}
	entregados, err := s.dispositivoRepo.FindEntregados(ctx)
	if err != nil {
		return nil, err
	}
	return agregarIngresos(entregados), nil
}

// agregarIngresos buckets delivered devices into revenue and profit maps by
// month, ISO week and day of the delivery date. Devices missing price or
// delivery date are skipped; the state machine should make that unreachable.
func agregarIngresos(dispositivos []model.Dispositivo) *dto.ReporteIngresosResponse {
	resp := &dto.ReporteIngresosResponse{
		IngresosMensuales:  make(map[string]decimal.Decimal),
		IngresosSemanales:  make(map[string]decimal.Decimal),
		IngresosDiarios:    make(map[string]decimal.Decimal),
		GananciasMensuales: make(map[string]decimal.Decimal),
		GananciasSemanales: make(map[string]decimal.Decimal),
		GananciasDiarias:   make(map[string]decimal.Decimal),
	}

	for i := range dispositivos {
		d := &dispositivos[i]
		if d.FechaEntrega == nil || d.PrecioFinal == nil {
			continue
		}

		entrega := *d.FechaEntrega
		claveMes := fmt.Sprintf("%d-%s", entrega.Year(), entrega.Month())
		_, semana := entrega.ISOWeek()
		claveSemana := fmt.Sprintf("%d-%d", entrega.Year(), semana)
		claveDia := entrega.Format("2006-01-02")

		costoTotal := decimal.Zero
		for _, rep := range d.Reparaciones {
			costoTotal = costoTotal.Add(rep.Costo)
		}
		ganancia := d.PrecioFinal.Sub(costoTotal)

		resp.IngresosMensuales[claveMes] = resp.IngresosMensuales[claveMes].Add(*d.PrecioFinal)
		resp.IngresosSemanales[claveSemana] = resp.IngresosSemanales[claveSemana].Add(*d.PrecioFinal)
		resp.IngresosDiarios[claveDia] = resp.IngresosDiarios[claveDia].Add(*d.PrecioFinal)

		resp.GananciasMensuales[claveMes] = resp.GananciasMensuales[claveMes].Add(ganancia)
		resp.GananciasSemanales[claveSemana] = resp.GananciasSemanales[claveSemana].Add(ganancia)
		resp.GananciasDiarias[claveDia] = resp.GananciasDiarias[claveDia].Add(ganancia)
	}
	return resp
}
