package model

// Roles del sistema.
const (
	RolAdmin          = "admin"
	RolAdministrativo = "administrativo"
	RolVendedor       = "vendedor"
	RolTecnico        = "tecnico"
)

// Sucursales conocidas. La sucursal es un dato de filtrado/defaulting,
// no un límite de seguridad.
const SucursalPrincipal = "Sucursal Principal"

var Sucursales = []string{SucursalPrincipal, "Sucursal Norte", "Sucursal Sur"}

// Actor describes the authenticated identity performing an operation.
// Services receive it explicitly on every mutating call — there is no
// ambient session state.
type Actor struct {
	UsuarioID uint
	Username  string
	Rol       string
	Sucursal  string
}

func (a Actor) EsAdmin() bool { return a.Rol == RolAdmin }

// TieneRol reports whether the actor holds any of the given roles.
func (a Actor) TieneRol(roles ...string) bool {
	for _, r := range roles {
		if a.Rol == r {
			return true
		}
	}
	return false
}
