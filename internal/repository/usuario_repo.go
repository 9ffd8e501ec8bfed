package repository

import (
	"context"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	FindByRol(ctx context.Context, rol string) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error

	// Used inside the user-deletion transaction — callers pass the tx instance.
	ReasignarRegistradosTx(tx *gorm.DB, deUsuarioID, aUsuarioID uint) error
	DesasignarTecnicoTx(tx *gorm.DB, tecnicoID uint) error
	DeleteTx(tx *gorm.DB, id uint) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) FindByRol(ctx context.Context, rol string) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Where("rol = ?", rol).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) ReasignarRegistradosTx(tx *gorm.DB, deUsuarioID, aUsuarioID uint) error {
	return tx.Model(&model.Dispositivo{}).
		Where("usuario_id = ?", deUsuarioID).
		Update("usuario_id", aUsuarioID).Error
}

func (r *usuarioRepo) DesasignarTecnicoTx(tx *gorm.DB, tecnicoID uint) error {
	return tx.Model(&model.Dispositivo{}).
		Where("tecnico_asignado_id = ?", tecnicoID).
		Update("tecnico_asignado_id", nil).Error
}

func (r *usuarioRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Usuario{}, id).Error
}

func (r *usuarioRepo) DB() *gorm.DB { return r.db }
