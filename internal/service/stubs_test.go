package service_test

import (
	"context"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. DB() returns nil so services run their transaction
// bodies directly (runTx passes a nil tx through).

type stubDispositivoRepo struct {
	seq          uint
	orden        []uint
	dispositivos map[uint]*model.Dispositivo

	deletedUsos  []uint
	deletedFotos []uint
	deletedReps  []uint
}

func newStubDispositivoRepo() *stubDispositivoRepo {
	return &stubDispositivoRepo{dispositivos: make(map[uint]*model.Dispositivo)}
}

func (r *stubDispositivoRepo) Create(_ context.Context, d *model.Dispositivo) error {
	for _, otro := range r.dispositivos {
		if otro.CodigoSeguimiento == d.CodigoSeguimiento {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	d.ID = r.seq
	r.dispositivos[d.ID] = d
	r.orden = append(r.orden, d.ID)
	return nil
}

func (r *stubDispositivoRepo) FindByID(_ context.Context, id uint) (*model.Dispositivo, error) {
	d, ok := r.dispositivos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDispositivoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Dispositivo, error) {
	for _, d := range r.dispositivos {
		if d.CodigoSeguimiento == codigo {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDispositivoRepo) FindByCodigoYDocumento(_ context.Context, codigo, documento string) (*model.Dispositivo, error) {
	for _, d := range r.dispositivos {
		if d.CodigoSeguimiento == codigo && d.ClienteDocumento == documento {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDispositivoRepo) Buscar(_ context.Context, _ string) ([]model.Dispositivo, error) {
	out := make([]model.Dispositivo, 0, len(r.orden))
	for _, id := range r.orden {
		if d, ok := r.dispositivos[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDispositivoRepo) FindEntregados(_ context.Context) ([]model.Dispositivo, error) {
	var out []model.Dispositivo
	for _, id := range r.orden {
		if d, ok := r.dispositivos[id]; ok && d.EstadoActual == model.EstadoRetirado {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDispositivoRepo) ActualizarCampos(_ context.Context, id uint, campos map[string]interface{}) error {
	d, ok := r.dispositivos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range campos {
		switch k {
		case "estado_actual":
			d.EstadoActual = v.(model.Estado)
		case "tecnico_asignado_id":
			tid := v.(uint)
			d.TecnicoAsignadoID = &tid
		case "precio_final":
			if v == nil {
				d.PrecioFinal = nil
			} else {
				p := v.(decimal.Decimal)
				d.PrecioFinal = &p
			}
		case "fecha_entrega":
			if v == nil {
				d.FechaEntrega = nil
			} else {
				t := v.(time.Time)
				d.FechaEntrega = &t
			}
		}
	}
	return nil
}

func (r *stubDispositivoRepo) CrearFotos(_ context.Context, fotos []model.Foto) error {
	for _, f := range fotos {
		if f.DispositivoID != nil {
			if d, ok := r.dispositivos[*f.DispositivoID]; ok {
				d.Fotos = append(d.Fotos, f)
			}
		}
	}
	return nil
}

func (r *stubDispositivoRepo) DeleteUsosTx(_ *gorm.DB, dispositivoID uint) error {
	r.deletedUsos = append(r.deletedUsos, dispositivoID)
	return nil
}

func (r *stubDispositivoRepo) DeleteFotosTx(_ *gorm.DB, dispositivoID uint) error {
	r.deletedFotos = append(r.deletedFotos, dispositivoID)
	return nil
}

func (r *stubDispositivoRepo) DeleteReparacionesTx(_ *gorm.DB, dispositivoID uint) error {
	r.deletedReps = append(r.deletedReps, dispositivoID)
	return nil
}

func (r *stubDispositivoRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.dispositivos, id)
	return nil
}

func (r *stubDispositivoRepo) DB() *gorm.DB { return nil }

var _ repository.DispositivoRepository = (*stubDispositivoRepo)(nil)

// stubcomponenteRepo is an in-memory ComponenteRepository.
type stubComponenteRepo struct {
	seq         uint
	componentes map[uint]*model.Componente
}

func newStubComponenteRepo() *stubComponenteRepo {
	return &stubComponenteRepo{componentes: make(map[uint]*model.Componente)}
}

func (r *stubComponenteRepo) Create(_ context.Context, c *model.Componente) error {
	for _, otro := range r.componentes {
		if otro.Nombre == c.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	c.ID = r.seq
	r.componentes[c.ID] = c
	return nil
}

func (r *stubComponenteRepo) FindByID(_ context.Context, id uint) (*model.Componente, error) {
	return r.find(id)
}

func (r *stubComponenteRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Componente, error) {
	return r.find(id)
}

func (r *stubComponenteRepo) find(id uint) (*model.Componente, error) {
	c, ok := r.componentes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComponenteRepo) List(_ context.Context) ([]model.Componente, error) {
	out := make([]model.Componente, 0, len(r.componentes))
	for _, c := range r.componentes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubComponenteRepo) ListDisponibles(_ context.Context) ([]model.Componente, error) {
	var out []model.Componente
	for _, c := range r.componentes {
		if c.StockCantidad > 0 {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubComponenteRepo) DescontarStockTx(_ *gorm.DB, id uint, cantidad int) (bool, error) {
	c, ok := r.componentes[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if c.StockCantidad < cantidad {
		return false, nil
	}
	c.StockCantidad -= cantidad
	return true, nil
}

func (r *stubComponenteRepo) DB() *gorm.DB { return nil }

var _ repository.ComponenteRepository = (*stubComponenteRepo)(nil)

// stubReparacionRepo is an in-memory ReparacionRepository. It shares the
// device stub so ActualizarEstadoDispositivoTx mirrors the real cross-table
// update, and the component stub to hydrate usage rows on FindByID.
type stubReparacionRepo struct {
	seq          uint
	reparaciones map[uint]*model.Reparacion
	usos         map[[2]uint]*model.ReparacionComponente

	dispositivos *stubDispositivoRepo
	componentes  *stubComponenteRepo
}

func newStubReparacionRepo(d *stubDispositivoRepo, c *stubComponenteRepo) *stubReparacionRepo {
	return &stubReparacionRepo{
		reparaciones: make(map[uint]*model.Reparacion),
		usos:         make(map[[2]uint]*model.ReparacionComponente),
		dispositivos: d,
		componentes:  c,
	}
}

func (r *stubReparacionRepo) FindByID(_ context.Context, id uint) (*model.Reparacion, error) {
	rep, ok := r.reparaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	rep.Componentes = rep.Componentes[:0]
	for clave, uso := range r.usos {
		if clave[0] != id {
			continue
		}
		u := *uso
		if comp, ok := r.componentes.componentes[clave[1]]; ok {
			c := *comp
			u.Componente = &c
		}
		rep.Componentes = append(rep.Componentes, u)
	}
	return rep, nil
}

func (r *stubReparacionRepo) CreateTx(_ *gorm.DB, rep *model.Reparacion) error {
	r.seq++
	rep.ID = r.seq
	r.reparaciones[rep.ID] = rep
	return nil
}

func (r *stubReparacionRepo) FindUsoTx(_ *gorm.DB, reparacionID, componenteID uint) (*model.ReparacionComponente, error) {
	uso, ok := r.usos[[2]uint{reparacionID, componenteID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return uso, nil
}

func (r *stubReparacionRepo) CreateUsoTx(_ *gorm.DB, uso *model.ReparacionComponente) error {
	r.usos[[2]uint{uso.ReparacionID, uso.ComponenteID}] = uso
	return nil
}

func (r *stubReparacionRepo) IncrementarUsoTx(_ *gorm.DB, reparacionID, componenteID uint, cantidad int) error {
	uso, ok := r.usos[[2]uint{reparacionID, componenteID}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	uso.CantidadUsada += cantidad
	return nil
}

func (r *stubReparacionRepo) IncrementarCostoTx(_ *gorm.DB, reparacionID uint, monto decimal.Decimal) error {
	rep, ok := r.reparaciones[reparacionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rep.Costo = rep.Costo.Add(monto)
	return nil
}

func (r *stubReparacionRepo) ActualizarEstadoDispositivoTx(_ *gorm.DB, dispositivoID uint, campos map[string]interface{}) error {
	return r.dispositivos.ActualizarCampos(context.Background(), dispositivoID, campos)
}

func (r *stubReparacionRepo) ActualizarCosto(_ context.Context, id uint, costo decimal.Decimal) error {
	rep, ok := r.reparaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rep.Costo = costo
	return nil
}

func (r *stubReparacionRepo) ActualizarPrecio(_ context.Context, id uint, precio decimal.Decimal) error {
	rep, ok := r.reparaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rep.PrecioCliente = precio
	return nil
}

func (r *stubReparacionRepo) CrearFotos(_ context.Context, fotos []model.Foto) error {
	for _, f := range fotos {
		if f.ReparacionID != nil {
			if rep, ok := r.reparaciones[*f.ReparacionID]; ok {
				rep.Fotos = append(rep.Fotos, f)
			}
		}
	}
	return nil
}

func (r *stubReparacionRepo) DB() *gorm.DB { return nil }

var _ repository.ReparacionRepository = (*stubReparacionRepo)(nil)

// stubUsuarioRepo is an in-memory UsuarioRepository.
type stubUsuarioRepo struct {
	seq      uint
	usuarios map[uint]*model.Usuario

	reasignadoDe, reasignadoA uint
	desasignado               uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, otro := range r.usuarios {
		if otro.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	u.ID = r.seq
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) FindByRol(_ context.Context, rol string) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Rol == rol {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) ReasignarRegistradosTx(_ *gorm.DB, deUsuarioID, aUsuarioID uint) error {
	r.reasignadoDe, r.reasignadoA = deUsuarioID, aUsuarioID
	return nil
}

func (r *stubUsuarioRepo) DesasignarTecnicoTx(_ *gorm.DB, tecnicoID uint) error {
	r.desasignado = tecnicoID
	return nil
}

func (r *stubUsuarioRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.usuarios, id)
	return nil
}

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func actorCon(rol string) model.Actor {
	return model.Actor{UsuarioID: 1, Username: "tester", Rol: rol, Sucursal: model.SucursalPrincipal}
}

func seedDispositivo(repo *stubDispositivoRepo, codigo string, estado model.Estado) *model.Dispositivo {
	d := &model.Dispositivo{
		CodigoSeguimiento: codigo,
		UsuarioID:         1,
		Sucursal:          model.SucursalPrincipal,
		Marca:             "Lenovo",
		Modelo:            "ThinkPad X1",
		Problema:          "No enciende",
		EstadoActual:      estado,
		ClienteNombre:     "Carlos Pérez",
		ClienteDocumento:  "30111222",
		ClienteTelefono:   "099111222",
		FechaRecepcion:    time.Now().UTC().Add(-72 * time.Hour),
	}
	_ = repo.Create(context.Background(), d)
	return d
}

func seedComponente(repo *stubComponenteRepo, nombre string, stock int, precio float64) *model.Componente {
	c := &model.Componente{
		Nombre:        nombre,
		StockCantidad: stock,
		Precio:        decimal.NewFromFloat(precio),
	}
	_ = repo.Create(context.Background(), c)
	return c
}

func seedReparacion(repo *stubReparacionRepo, dispositivoID uint, estado model.Estado, fin *time.Time) *model.Reparacion {
	rep := &model.Reparacion{
		DispositivoID: dispositivoID,
		Descripcion:   "Cambio de pantalla",
		Estado:        estado,
		FechaInicio:   time.Now().UTC().Add(-48 * time.Hour),
		FechaFin:      fin,
		Costo:         decimal.Zero,
		PrecioCliente: decimal.Zero,
	}
	_ = repo.CreateTx(nil, rep)
	return rep
}
