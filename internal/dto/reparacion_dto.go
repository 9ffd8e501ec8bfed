package dto

import "github.com/shopspring/decimal"

type CrearReparacionRequest struct {
	Descripcion   string           `json:"descripcion" validate:"required"`
	Estado        string           `json:"estado"      validate:"required"`
	Notas         *string          `json:"notas"`
	Costo         *decimal.Decimal `json:"costo"              validate:"omitempty,min=0"`
	PrecioCliente *decimal.Decimal `json:"precio_cliente"     validate:"omitempty,min=0"`
}

type ConsumirComponenteRequest struct {
	ComponenteID  uint `json:"componente_id"  validate:"required"`
	CantidadUsada int  `json:"cantidad_usada" validate:"required,min=1"`
}

// Pointers: 0 is a valid override (anular un costo o regalar el trabajo),
// only a missing field is rejected.
type EditarCostoRequest struct {
	NuevoCosto *decimal.Decimal `json:"nuevo_costo" validate:"required,min=0"`
}

type EditarPrecioRequest struct {
	NuevoPrecio *decimal.Decimal `json:"nuevo_precio_cliente" validate:"required,min=0"`
}

type ComponenteUsadoResponse struct {
	ComponenteID  uint            `json:"componente_id"`
	Nombre        string          `json:"nombre"`
	CantidadUsada int             `json:"cantidad_usada"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type ReparacionResponse struct {
	ID            uint                      `json:"id"`
	DispositivoID uint                      `json:"dispositivo_id"`
	Descripcion   string                    `json:"descripcion"`
	Estado        string                    `json:"estado"`
	FechaInicio   string                    `json:"fecha_inicio"`
	FechaFin      *string                   `json:"fecha_fin"`
	Notas         *string                   `json:"notas"`
	Costo         decimal.Decimal           `json:"costo"`
	PrecioCliente decimal.Decimal           `json:"precio_cliente"`
	Componentes   []ComponenteUsadoResponse `json:"componentes"`
	Fotos         []string                  `json:"fotos"`
}
