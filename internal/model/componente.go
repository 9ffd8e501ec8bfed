package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Componente is a stock item consumed by repairs.
// StockCantidad never goes negative: the decrement is guarded at the store.
type Componente struct {
	ID            uint            `gorm:"primaryKey"`
	Nombre        string          `gorm:"uniqueIndex;size:100;not null"`
	StockCantidad int             `gorm:"not null;default:0"`
	Precio        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
