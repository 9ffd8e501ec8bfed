package service_test

import (
	"context"
	"testing"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReparacionSvc() (service.ReparacionService, *stubReparacionRepo, *stubDispositivoRepo, *stubComponenteRepo) {
	dispositivoRepo := newStubDispositivoRepo()
	componenteRepo := newStubComponenteRepo()
	reparacionRepo := newStubReparacionRepo(dispositivoRepo, componenteRepo)
	svc := service.NewReparacionService(reparacionRepo, dispositivoRepo, componenteRepo, nil)
	return svc, reparacionRepo, dispositivoRepo, componenteRepo
}

func TestAgregarReparacion_SincronizaEstado(t *testing.T) {
	svc, _, dispositivoRepo, _ := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoIngresado)

	resp, err := svc.Agregar(context.Background(), actorCon(model.RolTecnico), d.ID, dto.CrearReparacionRequest{
		Descripcion: "Reemplazo de batería",
		Estado:      "Reparacion",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reparacion", resp.Estado)
	assert.Nil(t, resp.FechaFin)

	// El estado del dispositivo sigue al de la reparación
	assert.Equal(t, model.EstadoReparacion, dispositivoRepo.dispositivos[d.ID].EstadoActual)
}

func TestAgregarReparacion_TerminadoSellaFechaFin(t *testing.T) {
	svc, repo, dispositivoRepo, _ := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)

	resp, err := svc.Agregar(context.Background(), actorCon(model.RolTecnico), d.ID, dto.CrearReparacionRequest{
		Descripcion: "Limpieza final y pruebas",
		Estado:      "Terminado",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FechaFin)
	assert.Equal(t, model.EstadoTerminado, dispositivoRepo.dispositivos[d.ID].EstadoActual)
	assert.NotNil(t, repo.reparaciones[resp.ID].FechaFin)
}

func TestAgregarReparacion_TecnicoNoPuedeRetirar(t *testing.T) {
	svc, repo, dispositivoRepo, _ := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)

	_, err := svc.Agregar(context.Background(), actorCon(model.RolTecnico), d.ID, dto.CrearReparacionRequest{
		Descripcion: "Entrega",
		Estado:      "Retirado",
	})
	assert.True(t, apperr.EsAutorizacion(err))
	assert.Empty(t, repo.reparaciones)
	assert.Equal(t, model.EstadoReparacion, dispositivoRepo.dispositivos[d.ID].EstadoActual)
}

func TestAgregarReparacion_EstadoInvalido(t *testing.T) {
	svc, _, dispositivoRepo, _ := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoIngresado)

	_, err := svc.Agregar(context.Background(), actorCon(model.RolAdmin), d.ID, dto.CrearReparacionRequest{
		Descripcion: "???",
		Estado:      "Desconocido",
	})
	assert.True(t, apperr.EsValidacion(err))
}

// ── Consumo de componentes ────────────────────────────────────────────────────

func TestConsumirComponente(t *testing.T) {
	svc, repo, dispositivoRepo, componenteRepo := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	rep := seedReparacion(repo, d.ID, model.EstadoReparacion, nil)
	pantalla := seedComponente(componenteRepo, "Pantalla LCD 15.6", 10, 120.50)

	resp, err := svc.ConsumirComponente(context.Background(), actorCon(model.RolTecnico), rep.ID, dto.ConsumirComponenteRequest{
		ComponenteID:  pantalla.ID,
		CantidadUsada: 2,
	})
	require.NoError(t, err)

	// Stock descontado y costo incrementado en precio × cantidad
	assert.Equal(t, 8, componenteRepo.componentes[pantalla.ID].StockCantidad)
	assert.Equal(t, "241", repo.reparaciones[rep.ID].Costo.String())

	require.Len(t, resp.Componentes, 1)
	assert.Equal(t, 2, resp.Componentes[0].CantidadUsada)
	assert.Equal(t, "Pantalla LCD 15.6", resp.Componentes[0].Nombre)
}

func TestConsumirComponente_AcumulaCantidad(t *testing.T) {
	svc, repo, dispositivoRepo, componenteRepo := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	rep := seedReparacion(repo, d.ID, model.EstadoReparacion, nil)
	teclado := seedComponente(componenteRepo, "Teclado español", 10, 40)

	consumir := func(cantidad int) {
		_, err := svc.ConsumirComponente(context.Background(), actorCon(model.RolTecnico), rep.ID, dto.ConsumirComponenteRequest{
			ComponenteID:  teclado.ID,
			CantidadUsada: cantidad,
		})
		require.NoError(t, err)
	}
	consumir(1)
	consumir(3)

	// Un solo registro de uso con la suma, no dos filas
	require.Len(t, repo.usos, 1)
	uso := repo.usos[[2]uint{rep.ID, teclado.ID}]
	assert.Equal(t, 4, uso.CantidadUsada)

	assert.Equal(t, 6, componenteRepo.componentes[teclado.ID].StockCantidad)
	assert.Equal(t, "160", repo.reparaciones[rep.ID].Costo.String())
}

func TestConsumirComponente_StockInsuficiente(t *testing.T) {
	svc, repo, dispositivoRepo, componenteRepo := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	rep := seedReparacion(repo, d.ID, model.EstadoReparacion, nil)
	bateria := seedComponente(componenteRepo, "Batería 45Wh", 2, 80)

	_, err := svc.ConsumirComponente(context.Background(), actorCon(model.RolTecnico), rep.ID, dto.ConsumirComponenteRequest{
		ComponenteID:  bateria.ID,
		CantidadUsada: 5,
	})
	require.Error(t, err)
	assert.True(t, apperr.EsStockInsuficiente(err))
	assert.ErrorContains(t, err, "Batería 45Wh")

	// Nada cambió: ni stock, ni usos, ni costo
	assert.Equal(t, 2, componenteRepo.componentes[bateria.ID].StockCantidad)
	assert.Empty(t, repo.usos)
	assert.True(t, repo.reparaciones[rep.ID].Costo.IsZero())
}

func TestConsumirComponente_CantidadInvalida(t *testing.T) {
	svc, repo, dispositivoRepo, componenteRepo := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	rep := seedReparacion(repo, d.ID, model.EstadoReparacion, nil)
	c := seedComponente(componenteRepo, "Disco SSD 512GB", 5, 95)

	_, err := svc.ConsumirComponente(context.Background(), actorCon(model.RolAdmin), rep.ID, dto.ConsumirComponenteRequest{
		ComponenteID:  c.ID,
		CantidadUsada: 0,
	})
	assert.True(t, apperr.EsValidacion(err))
	assert.Equal(t, 5, componenteRepo.componentes[c.ID].StockCantidad)
}

func TestConsumirComponente_RolNoAutorizado(t *testing.T) {
	svc, _, dispositivoRepo, componenteRepo := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	_ = d
	c := seedComponente(componenteRepo, "Memoria RAM 8GB", 5, 60)

	_, err := svc.ConsumirComponente(context.Background(), actorCon(model.RolVendedor), 1, dto.ConsumirComponenteRequest{
		ComponenteID:  c.ID,
		CantidadUsada: 1,
	})
	assert.True(t, apperr.EsAutorizacion(err))
}

// ── Ediciones directas ────────────────────────────────────────────────────────

func TestEditarCosto(t *testing.T) {
	svc, repo, dispositivoRepo, _ := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	rep := seedReparacion(repo, d.ID, model.EstadoReparacion, nil)

	require.NoError(t, svc.EditarCosto(context.Background(), actorCon(model.RolAdmin), rep.ID, decimal.NewFromFloat(350.75)))
	assert.Equal(t, "350.75", repo.reparaciones[rep.ID].Costo.String())
}

func TestEditarCosto_SoloAdmin(t *testing.T) {
	svc, repo, dispositivoRepo, _ := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	rep := seedReparacion(repo, d.ID, model.EstadoReparacion, nil)

	err := svc.EditarCosto(context.Background(), actorCon(model.RolTecnico), rep.ID, decimal.NewFromInt(100))
	assert.True(t, apperr.EsAutorizacion(err))
	assert.True(t, repo.reparaciones[rep.ID].Costo.IsZero())
}

func TestEditarPrecio(t *testing.T) {
	svc, repo, dispositivoRepo, _ := buildReparacionSvc()
	d := seedDispositivo(dispositivoRepo, "OT-20260101120000", model.EstadoReparacion)
	rep := seedReparacion(repo, d.ID, model.EstadoReparacion, nil)

	require.NoError(t, svc.EditarPrecio(context.Background(), actorCon(model.RolAdmin), rep.ID, decimal.NewFromInt(500)))
	assert.Equal(t, "500", repo.reparaciones[rep.ID].PrecioCliente.String())

	err := svc.EditarPrecio(context.Background(), actorCon(model.RolAdmin), rep.ID, decimal.NewFromInt(-1))
	assert.True(t, apperr.EsValidacion(err))
}
