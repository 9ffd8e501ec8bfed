package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dispositivo is a customer device registered for repair.
//
// CodigoSeguimiento se asigna una sola vez al crear y nunca cambia.
// PrecioFinal y FechaEntrega son no-nulos si y sólo si EstadoActual == Retirado.
type Dispositivo struct {
	ID                uint    `gorm:"primaryKey"`
	CodigoSeguimiento string  `gorm:"uniqueIndex;size:20;not null"`
	UsuarioID         uint    `gorm:"not null;index"` // quien registró el ingreso
	TecnicoAsignadoID *uint   `gorm:"index"`
	Sucursal          string  `gorm:"size:50;not null;default:'Sucursal Principal'"`
	Marca             string  `gorm:"size:100;not null"`
	Modelo            string  `gorm:"size:100;not null"`
	NumeroSerie       *string `gorm:"uniqueIndex;size:100"`
	Problema          string  `gorm:"type:text;not null"`
	EstadoActual      Estado  `gorm:"type:varchar(20);not null;default:'Ingresado'"`

	ClienteNombre    string  `gorm:"size:100;not null"`
	ClienteDocumento string  `gorm:"size:20;not null"` // DNI/CUIT
	ClienteTelefono  string  `gorm:"size:20;not null"`
	ClienteEmail     *string `gorm:"size:100"`

	FechaRecepcion time.Time        `gorm:"not null"`
	PrecioFinal    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	FechaEntrega   *time.Time

	Reparaciones []Reparacion `gorm:"foreignKey:DispositivoID"`
	Fotos        []Foto       `gorm:"foreignKey:DispositivoID"`
	Registrante  *Usuario     `gorm:"foreignKey:UsuarioID"`
	Tecnico      *Usuario     `gorm:"foreignKey:TecnicoAsignadoID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DiasGarantia is the fixed pickup/warranty window in days after a repair
// completes. Shared by the warranty evaluator, the printed ticket and the
// pickup-notice email.
const DiasGarantia = 5

// UltimaReparacionTerminada returns the end date of the most recently
// completed repair, or nil when the device has none. Ties resolve to the
// latest FechaFin.
func (d *Dispositivo) UltimaReparacionTerminada() *time.Time {
	var ultima *time.Time
	for i := range d.Reparaciones {
		r := &d.Reparaciones[i]
		if r.Estado != EstadoTerminado || r.FechaFin == nil {
			continue
		}
		if ultima == nil || r.FechaFin.After(*ultima) {
			ultima = r.FechaFin
		}
	}
	return ultima
}

// Foto is one photo reference owned by either a Dispositivo (intake photos)
// or a Reparacion (work photos). Posicion preserves upload order; the actual
// bytes live in the blob store under NombreArchivo.
type Foto struct {
	ID            uint   `gorm:"primaryKey"`
	DispositivoID *uint  `gorm:"index"`
	ReparacionID  *uint  `gorm:"index"`
	NombreArchivo string `gorm:"size:512;not null"`
	Posicion      int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
}
