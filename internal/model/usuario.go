package model

import "time"

// Usuario stores system users with role-based access.
// Rol: "admin" | "administrativo" | "vendedor" | "tecnico"
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'tecnico'"`
	Sucursal     string `gorm:"size:50;not null;default:'Sucursal Principal'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Two independent, non-exclusive relations to Dispositivo: the user who
	// took the device in at the counter and the technician it was assigned to.
	DispositivosRegistrados []Dispositivo `gorm:"foreignKey:UsuarioID"`
	DispositivosAsignados   []Dispositivo `gorm:"foreignKey:TecnicoAsignadoID"`
}
