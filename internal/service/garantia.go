package service

import (
	"fmt"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
)

// DiasGarantia re-exports the shared warranty window for callers of the
// evaluator.
const DiasGarantia = model.DiasGarantia

// umbralAvisoGarantia: a partir de cuántos días se empieza a avisar.
const umbralAvisoGarantia = 3

// MensajeGarantia evaluates the warranty notice for a device at a given
// instant. It only applies to devices in Terminado; it keys off the most
// recently completed repair. Returns "" when no notice is due.
func MensajeGarantia(d *model.Dispositivo, ahora time.Time) string {
	if d.EstadoActual != model.EstadoTerminado {
		return ""
	}
	fin := d.UltimaReparacionTerminada()
	if fin == nil {
		return ""
	}
	dias := int(ahora.Sub(*fin).Hours() / 24)
	switch {
	case dias > DiasGarantia:
		return fmt.Sprintf("¡Atención! Han pasado %d días desde la finalización. La garantía ha expirado.", dias)
	case dias > umbralAvisoGarantia:
		restantes := DiasGarantia - dias
		return fmt.Sprintf("¡Importante! Tienes %d días restantes para retirar tu dispositivo y conservar la garantía.", restantes)
	default:
		return ""
	}
}

// FinGarantia is the warranty end date printed on the intake ticket.
func FinGarantia(fechaRecepcion time.Time) time.Time {
	return fechaRecepcion.AddDate(0, 0, DiasGarantia)
}
