package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entregadoEl(repo *stubDispositivoRepo, codigo string, entrega time.Time, precio float64, costos ...float64) *model.Dispositivo {
	d := seedDispositivo(repo, codigo, model.EstadoRetirado)
	p := decimal.NewFromFloat(precio)
	d.PrecioFinal = &p
	d.FechaEntrega = &entrega
	for _, costo := range costos {
		d.Reparaciones = append(d.Reparaciones, model.Reparacion{
			DispositivoID: d.ID,
			Descripcion:   "Reparación",
			Estado:        model.EstadoTerminado,
			Costo:         decimal.NewFromFloat(costo),
		})
	}
	return d
}

func TestIngresos_AgrupaPorDia(t *testing.T) {
	repo := newStubDispositivoRepo()
	svc := service.NewReporteService(repo)

	dia := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	entregadoEl(repo, "OT-20260301000001", dia, 100, 30)
	entregadoEl(repo, "OT-20260301000002", dia.Add(5*time.Hour), 50, 10)

	resp, err := svc.Ingresos(context.Background(), actorCon(model.RolAdmin))
	require.NoError(t, err)

	assert.Equal(t, "150", resp.IngresosDiarios["2026-03-04"].String())
	// Ganancia = precio final − costos: (100−30) + (50−10)
	assert.Equal(t, "110", resp.GananciasDiarias["2026-03-04"].String())
}

func TestIngresos_ClavesDeAgrupacion(t *testing.T) {
	repo := newStubDispositivoRepo()
	svc := service.NewReporteService(repo)

	// 2026-03-04 cae en la semana ISO 10
	entrega := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	entregadoEl(repo, "OT-20260301000001", entrega, 200)

	resp, err := svc.Ingresos(context.Background(), actorCon(model.RolAdministrativo))
	require.NoError(t, err)

	assert.Contains(t, resp.IngresosMensuales, "2026-March")
	assert.Contains(t, resp.IngresosSemanales, "2026-10")
	assert.Contains(t, resp.IngresosDiarios, "2026-03-04")
	// Sin reparaciones la ganancia es el precio completo
	assert.Equal(t, "200", resp.GananciasMensuales["2026-March"].String())
}

func TestIngresos_MesesSeparados(t *testing.T) {
	repo := newStubDispositivoRepo()
	svc := service.NewReporteService(repo)

	entregadoEl(repo, "OT-20260301000001", time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC), 100)
	entregadoEl(repo, "OT-20260301000002", time.Date(2026, 4, 1, 1, 0, 0, 0, time.UTC), 80)

	resp, err := svc.Ingresos(context.Background(), actorCon(model.RolAdmin))
	require.NoError(t, err)

	assert.Equal(t, "100", resp.IngresosMensuales["2026-March"].String())
	assert.Equal(t, "80", resp.IngresosMensuales["2026-April"].String())
}

func TestIngresos_IgnoraNoEntregados(t *testing.T) {
	repo := newStubDispositivoRepo()
	svc := service.NewReporteService(repo)

	seedDispositivo(repo, "OT-20260301000001", model.EstadoTerminado)
	entregadoEl(repo, "OT-20260301000002", time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), 60)

	resp, err := svc.Ingresos(context.Background(), actorCon(model.RolAdmin))
	require.NoError(t, err)
	assert.Len(t, resp.IngresosDiarios, 1)
	assert.Equal(t, "60", resp.IngresosDiarios["2026-03-04"].String())
}

func TestIngresos_RolNoAutorizado(t *testing.T) {
	repo := newStubDispositivoRepo()
	svc := service.NewReporteService(repo)

	_, err := svc.Ingresos(context.Background(), actorCon(model.RolTecnico))
	assert.True(t, apperr.EsAutorizacion(err))

	_, err = svc.Ingresos(context.Background(), actorCon(model.RolVendedor))
	assert.True(t, apperr.EsAutorizacion(err))
}
