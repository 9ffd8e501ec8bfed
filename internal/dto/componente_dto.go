package dto

import "github.com/shopspring/decimal"

type CrearComponenteRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,max=100"`
	StockCantidad int             `json:"stock_cantidad" validate:"min=0"`
	Precio        decimal.Decimal `json:"precio"         validate:"required,min=0"`
}

type ComponenteResponse struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"`
	StockCantidad int             `json:"stock_cantidad"`
	Precio        decimal.Decimal `json:"precio"`
}
