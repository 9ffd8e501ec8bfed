package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reparacion is one unit of work on a device. Costo is the shop's internal
// cost: it accumulates as components are consumed and can also be overwritten
// by an admin — both adjustments apply to the same field. PrecioCliente is
// edited independently.
type Reparacion struct {
	ID            uint   `gorm:"primaryKey"`
	DispositivoID uint   `gorm:"not null;index"`
	Descripcion   string `gorm:"type:text;not null"`
	Estado        Estado `gorm:"type:varchar(20);not null;default:'Observacion'"`
	FechaInicio   time.Time `gorm:"not null"`
	FechaFin      *time.Time // sólo al completar
	Notas         *string    `gorm:"type:text"`
	Costo         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PrecioCliente decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	Componentes []ReparacionComponente `gorm:"foreignKey:ReparacionID"`
	Fotos       []Foto                 `gorm:"foreignKey:ReparacionID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReparacionComponente registra el consumo de un componente en una
// reparación. La clave (reparacion_id, componente_id) es única: consumir el
// mismo componente otra vez acumula CantidadUsada.
type ReparacionComponente struct {
	ReparacionID  uint `gorm:"primaryKey"`
	ComponenteID  uint `gorm:"primaryKey"`
	CantidadUsada int  `gorm:"not null;default:1"`

	Componente *Componente `gorm:"foreignKey:ComponenteID"`
}

// TableName overrides GORM's default pluralization.
func (ReparacionComponente) TableName() string { return "reparacion_componentes" }
