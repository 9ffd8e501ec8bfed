package repository

import (
	"context"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"

	"gorm.io/gorm"
)

type ComponenteRepository interface {
	Create(ctx context.Context, c *model.Componente) error
	FindByID(ctx context.Context, id uint) (*model.Componente, error)
	List(ctx context.Context) ([]model.Componente, error)
	ListDisponibles(ctx context.Context) ([]model.Componente, error)

	FindByIDTx(tx *gorm.DB, id uint) (*model.Componente, error)
	// DescontarStockTx decrements stock only when enough units remain; the
	// guarded UPDATE makes concurrent consumers serialize at the row instead
	// of double-passing a read-then-check. Returns false when stock was
	// insufficient (no row touched).
	DescontarStockTx(tx *gorm.DB, id uint, cantidad int) (bool, error)

	DB() *gorm.DB
}

type componenteRepo struct{ db *gorm.DB }

func NewComponenteRepository(db *gorm.DB) ComponenteRepository { return &componenteRepo{db: db} }

func (r *componenteRepo) Create(ctx context.Context, c *model.Componente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *componenteRepo) FindByID(ctx context.Context, id uint) (*model.Componente, error) {
	var c model.Componente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *componenteRepo) List(ctx context.Context) ([]model.Componente, error) {
	var componentes []model.Componente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&componentes).Error
	return componentes, err
}

func (r *componenteRepo) ListDisponibles(ctx context.Context) ([]model.Componente, error) {
	var componentes []model.Componente
	err := r.db.WithContext(ctx).Where("stock_cantidad > 0").Order("nombre ASC").Find(&componentes).Error
	return componentes, err
}

func (r *componenteRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Componente, error) {
	var c model.Componente
	err := tx.First(&c, id).Error
	return &c, err
}

func (r *componenteRepo) DescontarStockTx(tx *gorm.DB, id uint, cantidad int) (bool, error) {
	res := tx.Model(&model.Componente{}).
		Where("id = ? AND stock_cantidad >= ?", id, cantidad).
		Update("stock_cantidad", gorm.Expr("stock_cantidad - ?", cantidad))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *componenteRepo) DB() *gorm.DB { return r.db }
