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

func TestCrearComponente(t *testing.T) {
	repo := newStubComponenteRepo()
	svc := service.NewComponenteService(repo)

	resp, err := svc.Crear(context.Background(), actorCon(model.RolAdministrativo), dto.CrearComponenteRequest{
		Nombre:        "Pantalla LCD 15.6",
		StockCantidad: 12,
		Precio:        decimal.NewFromFloat(120.50),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.StockCantidad)
	assert.Equal(t, "120.5", resp.Precio.String())
}

func TestCrearComponente_NombreDuplicado(t *testing.T) {
	repo := newStubComponenteRepo()
	svc := service.NewComponenteService(repo)
	seedComponente(repo, "Teclado español", 5, 40)

	_, err := svc.Crear(context.Background(), actorCon(model.RolAdmin), dto.CrearComponenteRequest{
		Nombre: "Teclado español",
		Precio: decimal.NewFromInt(45),
	})
	assert.True(t, apperr.EsConflicto(err))
}

func TestCrearComponente_RolNoAutorizado(t *testing.T) {
	repo := newStubComponenteRepo()
	svc := service.NewComponenteService(repo)

	_, err := svc.Crear(context.Background(), actorCon(model.RolTecnico), dto.CrearComponenteRequest{
		Nombre: "Cargador 65W",
		Precio: decimal.NewFromInt(30),
	})
	assert.True(t, apperr.EsAutorizacion(err))
	assert.Empty(t, repo.componentes)
}

func TestListarDisponibles_SoloConStock(t *testing.T) {
	repo := newStubComponenteRepo()
	svc := service.NewComponenteService(repo)
	seedComponente(repo, "Pantalla LCD 15.6", 3, 120)
	seedComponente(repo, "Batería agotada", 0, 80)

	disponibles, err := svc.ListarDisponibles(context.Background())
	require.NoError(t, err)
	require.Len(t, disponibles, 1)
	assert.Equal(t, "Pantalla LCD 15.6", disponibles[0].Nombre)
}
