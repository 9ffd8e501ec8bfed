package model

// Estado is the shared workflow status used by both Dispositivo.EstadoActual
// and Reparacion.Estado. A Reparacion can never write a value outside this
// enum into the device header.
type Estado string

const (
	EstadoIngresado   Estado = "Ingresado"
	EstadoObservacion Estado = "Observacion"
	EstadoReparacion  Estado = "Reparacion"
	EstadoTerminado   Estado = "Terminado"
	EstadoRetirado    Estado = "Retirado"
)

// Estados lists every valid workflow status, in lifecycle order.
var Estados = []Estado{
	EstadoIngresado,
	EstadoObservacion,
	EstadoReparacion,
	EstadoTerminado,
	EstadoRetirado,
}

func (e Estado) Valido() bool {
	for _, v := range Estados {
		if e == v {
			return true
		}
	}
	return false
}

// PermitidoParaTecnico reports whether a technician may set this status.
// Technicians work the middle of the lifecycle only: they never re-ingress
// a device nor hand it over to the customer.
func (e Estado) PermitidoParaTecnico() bool {
	switch e {
	case EstadoObservacion, EstadoReparacion, EstadoTerminado:
		return true
	}
	return false
}

func (e Estado) String() string { return string(e) }
