package repository

import (
	"context"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReparacionRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Reparacion, error)

	// Tx methods run inside the caller's transaction.
	CreateTx(tx *gorm.DB, rep *model.Reparacion) error
	FindUsoTx(tx *gorm.DB, reparacionID, componenteID uint) (*model.ReparacionComponente, error)
	CreateUsoTx(tx *gorm.DB, uso *model.ReparacionComponente) error
	IncrementarUsoTx(tx *gorm.DB, reparacionID, componenteID uint, cantidad int) error
	// IncrementarCostoTx ajusta el costo aditivamente (costo = costo + monto);
	// nunca se recalcula desde cero.
	IncrementarCostoTx(tx *gorm.DB, reparacionID uint, monto decimal.Decimal) error
	ActualizarEstadoDispositivoTx(tx *gorm.DB, dispositivoID uint, campos map[string]interface{}) error

	ActualizarCosto(ctx context.Context, id uint, costo decimal.Decimal) error
	ActualizarPrecio(ctx context.Context, id uint, precio decimal.Decimal) error
	CrearFotos(ctx context.Context, fotos []model.Foto) error

	DB() *gorm.DB
}

type reparacionRepo struct{ db *gorm.DB }

func NewReparacionRepository(db *gorm.DB) ReparacionRepository { return &reparacionRepo{db: db} }

func (r *reparacionRepo) FindByID(ctx context.Context, id uint) (*model.Reparacion, error) {
	var rep model.Reparacion
	err := r.db.WithContext(ctx).
		Preload("Componentes.Componente").
		Preload("Fotos").
		First(&rep, id).Error
	return &rep, err
}

func (r *reparacionRepo) CreateTx(tx *gorm.DB, rep *model.Reparacion) error {
	return tx.Create(rep).Error
}

func (r *reparacionRepo) FindUsoTx(tx *gorm.DB, reparacionID, componenteID uint) (*model.ReparacionComponente, error) {
	var uso model.ReparacionComponente
	err := tx.Where("reparacion_id = ? AND componente_id = ?", reparacionID, componenteID).
		First(&uso).Error
	return &uso, err
}

func (r *reparacionRepo) CreateUsoTx(tx *gorm.DB, uso *model.ReparacionComponente) error {
	return tx.Create(uso).Error
}

func (r *reparacionRepo) IncrementarUsoTx(tx *gorm.DB, reparacionID, componenteID uint, cantidad int) error {
	return tx.Model(&model.ReparacionComponente{}).
		Where("reparacion_id = ? AND componente_id = ?", reparacionID, componenteID).
		Update("cantidad_usada", gorm.Expr("cantidad_usada + ?", cantidad)).Error
}

func (r *reparacionRepo) IncrementarCostoTx(tx *gorm.DB, reparacionID uint, monto decimal.Decimal) error {
	return tx.Model(&model.Reparacion{}).
		Where("id = ?", reparacionID).
		Update("costo", gorm.Expr("costo + ?", monto)).Error
}

func (r *reparacionRepo) ActualizarEstadoDispositivoTx(tx *gorm.DB, dispositivoID uint, campos map[string]interface{}) error {
	return tx.Model(&model.Dispositivo{}).Where("id = ?", dispositivoID).Updates(campos).Error
}

func (r *reparacionRepo) ActualizarCosto(ctx context.Context, id uint, costo decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Reparacion{}).
		Where("id = ?", id).Update("costo", costo).Error
}

func (r *reparacionRepo) ActualizarPrecio(ctx context.Context, id uint, precio decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Reparacion{}).
		Where("id = ?", id).Update("precio_cliente", precio).Error
}

func (r *reparacionRepo) CrearFotos(ctx context.Context, fotos []model.Foto) error {
	if len(fotos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&fotos).Error
}

func (r *reparacionRepo) DB() *gorm.DB { return r.db }
