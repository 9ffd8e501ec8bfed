package repository

import (
	"context"
	"strconv"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"

	"gorm.io/gorm"
)

// DispositivoRepository defines the data access contract for devices.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type DispositivoRepository interface {
	Create(ctx context.Context, d *model.Dispositivo) error
	FindByID(ctx context.Context, id uint) (*model.Dispositivo, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Dispositivo, error)
	FindByCodigoYDocumento(ctx context.Context, codigo, documento string) (*model.Dispositivo, error)

	// Buscar returns candidate devices for the staff list (repairs preloaded,
	// ranking applied by the service). Empty query = all devices.
	Buscar(ctx context.Context, query string) ([]model.Dispositivo, error)

	// FindEntregados returns every Retirado device with repairs preloaded,
	// input of the revenue report.
	FindEntregados(ctx context.Context) ([]model.Dispositivo, error)

	// ActualizarCampos applies a partial update to the device header.
	ActualizarCampos(ctx context.Context, id uint, campos map[string]interface{}) error

	CrearFotos(ctx context.Context, fotos []model.Foto) error

	// Cascade-delete helpers — callers pass the tx instance.
	DeleteUsosTx(tx *gorm.DB, dispositivoID uint) error
	DeleteFotosTx(tx *gorm.DB, dispositivoID uint) error
	DeleteReparacionesTx(tx *gorm.DB, dispositivoID uint) error
	DeleteTx(tx *gorm.DB, id uint) error

	DB() *gorm.DB
}

type dispositivoRepo struct{ db *gorm.DB }

func NewDispositivoRepository(db *gorm.DB) DispositivoRepository {
	return &dispositivoRepo{db: db}
}

func (r *dispositivoRepo) Create(ctx context.Context, d *model.Dispositivo) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *dispositivoRepo) FindByID(ctx context.Context, id uint) (*model.Dispositivo, error) {
	var d model.Dispositivo
	err := r.db.WithContext(ctx).
		Preload("Reparaciones").
		Preload("Reparaciones.Componentes.Componente").
		Preload("Reparaciones.Fotos").
		Preload("Fotos", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		Preload("Tecnico").
		First(&d, id).Error
	return &d, err
}

func (r *dispositivoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Dispositivo, error) {
	var d model.Dispositivo
	err := r.db.WithContext(ctx).
		Preload("Reparaciones").
		Where("codigo_seguimiento = ?", codigo).
		First(&d).Error
	return &d, err
}

func (r *dispositivoRepo) FindByCodigoYDocumento(ctx context.Context, codigo, documento string) (*model.Dispositivo, error) {
	var d model.Dispositivo
	err := r.db.WithContext(ctx).
		Preload("Reparaciones").
		Where("codigo_seguimiento = ? AND cliente_documento = ?", codigo, documento).
		First(&d).Error
	return &d, err
}

func (r *dispositivoRepo) Buscar(ctx context.Context, query string) ([]model.Dispositivo, error) {
	q := r.db.WithContext(ctx).Model(&model.Dispositivo{}).Preload("Reparaciones")

	if query != "" {
		if id, err := strconv.Atoi(query); err == nil {
			q = q.Where("id = ?", id)
		} else {
			term := "%" + query + "%"
			q = q.Where(
				"codigo_seguimiento ILIKE ? OR cliente_nombre ILIKE ? OR cliente_documento ILIKE ? OR marca ILIKE ? OR modelo ILIKE ?",
				term, term, term, term, term,
			)
		}
	}

	var dispositivos []model.Dispositivo
	err := q.Find(&dispositivos).Error
	return dispositivos, err
}

func (r *dispositivoRepo) FindEntregados(ctx context.Context) ([]model.Dispositivo, error) {
	var dispositivos []model.Dispositivo
	err := r.db.WithContext(ctx).
		Preload("Reparaciones").
		Where("estado_actual = ?", model.EstadoRetirado).
		Find(&dispositivos).Error
	return dispositivos, err
}

func (r *dispositivoRepo) ActualizarCampos(ctx context.Context, id uint, campos map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Dispositivo{}).Where("id = ?", id).Updates(campos).Error
}

func (r *dispositivoRepo) CrearFotos(ctx context.Context, fotos []model.Foto) error {
	if len(fotos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&fotos).Error
}

func (r *dispositivoRepo) DeleteUsosTx(tx *gorm.DB, dispositivoID uint) error {
	return tx.Where(
		"reparacion_id IN (?)",
		tx.Session(&gorm.Session{NewDB: true}).Model(&model.Reparacion{}).
			Select("id").Where("dispositivo_id = ?", dispositivoID),
	).Delete(&model.ReparacionComponente{}).Error
}

func (r *dispositivoRepo) DeleteFotosTx(tx *gorm.DB, dispositivoID uint) error {
	if err := tx.Where(
		"reparacion_id IN (?)",
		tx.Session(&gorm.Session{NewDB: true}).Model(&model.Reparacion{}).
			Select("id").Where("dispositivo_id = ?", dispositivoID),
	).Delete(&model.Foto{}).Error; err != nil {
		return err
	}
	return tx.Where("dispositivo_id = ?", dispositivoID).Delete(&model.Foto{}).Error
}

func (r *dispositivoRepo) DeleteReparacionesTx(tx *gorm.DB, dispositivoID uint) error {
	return tx.Where("dispositivo_id = ?", dispositivoID).Delete(&model.Reparacion{}).Error
}

func (r *dispositivoRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Dispositivo{}, id).Error
}

func (r *dispositivoRepo) DB() *gorm.DB { return r.db }
