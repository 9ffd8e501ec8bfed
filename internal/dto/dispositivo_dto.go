package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearDispositivoRequest struct {
	ClienteNombre    string  `json:"cliente_nombre"    validate:"required,max=100"`
	ClienteDocumento string  `json:"cliente_documento" validate:"required,max=20"`
	ClienteTelefono  string  `json:"cliente_telefono"  validate:"required,max=20"`
	ClienteEmail     *string `json:"cliente_email"     validate:"omitempty,email"`
	Marca            string  `json:"marca"             validate:"required,max=100"`
	Modelo           string  `json:"modelo"            validate:"required,max=100"`
	NumeroSerie      *string `json:"numero_serie"      validate:"omitempty,max=100"`
	Problema         string  `json:"problema"          validate:"required"`
}

type AsignarTecnicoRequest struct {
	TecnicoID uint `json:"tecnico_id" validate:"required"`
}

type ActualizarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// PrecioFinal is a pointer so that a missing field is distinguishable from
// an explicit 0 (entrega sin cargo: garantía o cortesía).
type MarcarEntregadoRequest struct {
	PrecioFinal *decimal.Decimal `json:"precio_final" validate:"required,min=0"`
}

// DispositivoFilter is bound from query string of GET /v1/dispositivos.
// Query: numeric = exact device ID; anything else = substring match over
// codigo, cliente, documento, marca y modelo.
type DispositivoFilter struct {
	Query string `form:"query"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DispositivoResponse struct {
	ID                uint             `json:"id"`
	CodigoSeguimiento string           `json:"codigo_seguimiento"`
	Sucursal          string           `json:"sucursal"`
	Marca             string           `json:"marca"`
	Modelo            string           `json:"modelo"`
	NumeroSerie       *string          `json:"numero_serie"`
	Problema          string           `json:"problema"`
	EstadoActual      string           `json:"estado_actual"`
	ClienteNombre     string           `json:"cliente_nombre"`
	ClienteDocumento  string           `json:"cliente_documento"`
	ClienteTelefono   string           `json:"cliente_telefono"`
	ClienteEmail      *string          `json:"cliente_email"`
	FechaRecepcion    string           `json:"fecha_recepcion"`
	PrecioFinal       *decimal.Decimal `json:"precio_final"`
	FechaEntrega      *string          `json:"fecha_entrega"`
	TecnicoAsignadoID *uint            `json:"tecnico_asignado_id"`
	Fotos             []string         `json:"fotos"`
}

// DispositivoDetalleResponse adds the repair history to the device header.
type DispositivoDetalleResponse struct {
	DispositivoResponse
	Reparaciones []ReparacionResponse `json:"reparaciones"`
}

// DispositivoListItem is one row of the staff device list, already ranked.
type DispositivoListItem struct {
	ID                uint    `json:"id"`
	CodigoSeguimiento string  `json:"codigo_seguimiento"`
	ClienteNombre     string  `json:"cliente_nombre"`
	Marca             string  `json:"marca"`
	Modelo            string  `json:"modelo"`
	EstadoActual      string  `json:"estado_actual"`
	FechaRecepcion    string  `json:"fecha_recepcion"`
	UltimaTerminada   *string `json:"ultima_reparacion_terminada"`
	// Prioridad: 0 = Terminado reciente pendiente de retiro, 1 = Terminado
	// vencido, 2 = resto.
	Prioridad int `json:"prioridad"`
}
