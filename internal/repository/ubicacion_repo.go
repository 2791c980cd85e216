package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UbicacionRepository interface {
	Create(ctx context.Context, u *model.Ubicacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ubicacion, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Ubicacion, error)
	// FindByTipo resolves an active location by its immutable tipo; locations
	// can be renamed, so tipo is the stable key for BODEGA / SALA_VENTA.
	FindByTipo(ctx context.Context, tipo string) (*model.Ubicacion, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.Ubicacion, error)
	Update(ctx context.Context, u *model.Ubicacion) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type ubicacionRepo struct{ db *gorm.DB }

func NewUbicacionRepository(db *gorm.DB) UbicacionRepository { return &ubicacionRepo{db: db} }

func (r *ubicacionRepo) DB() *gorm.DB { return r.db }

func (r *ubicacionRepo) Create(ctx context.Context, u *model.Ubicacion) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *ubicacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ubicacion, error) {
	var u model.Ubicacion
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *ubicacionRepo) FindByNombre(ctx context.Context, nombre string) (*model.Ubicacion, error) {
	var u model.Ubicacion
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&u).Error
	return &u, err
}

func (r *ubicacionRepo) FindByTipo(ctx context.Context, tipo string) (*model.Ubicacion, error) {
	var u model.Ubicacion
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND activa = true", tipo).
		Order("created_at ASC").
		First(&u).Error
	return &u, err
}

func (r *ubicacionRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Ubicacion, error) {
	var ubicaciones []model.Ubicacion
	q := r.db.WithContext(ctx)
	if !incluirInactivas {
		q = q.Where("activa = true")
	}
	err := q.Order("nombre ASC").Find(&ubicaciones).Error
	return ubicaciones, err
}

func (r *ubicacionRepo) Update(ctx context.Context, u *model.Ubicacion) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *ubicacionRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ubicacion{}).Where("id = ?", id).Update("activa", false).Error
}
