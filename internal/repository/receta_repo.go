package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecetaRepository covers substitutable ingredient groups and the recipes
// that link COMIDA products to them.
type RecetaRepository interface {
	CreateGrupo(ctx context.Context, g *model.InsumoGrupo) error
	FindGrupoByID(ctx context.Context, id uuid.UUID) (*model.InsumoGrupo, error)
	FindGrupoByNombre(ctx context.Context, nombre string) (*model.InsumoGrupo, error)
	FindGruposByIDs(ctx context.Context, ids []uuid.UUID) ([]model.InsumoGrupo, error)
	ListGrupos(ctx context.Context) ([]model.InsumoGrupo, error)
	UpdateGrupo(ctx context.Context, g *model.InsumoGrupo) error

	CreateGrupoItem(ctx context.Context, item *model.InsumoGrupoItem) error
	FindGrupoItemByID(ctx context.Context, id uuid.UUID) (*model.InsumoGrupoItem, error)
	UpdateGrupoItem(ctx context.Context, item *model.InsumoGrupoItem) error
	DeleteGrupoItem(ctx context.Context, id uuid.UUID) error

	// ReplaceRecetaTx swaps the full recipe of a comida atomically.
	ReplaceRecetaTx(tx *gorm.DB, comidaID uuid.UUID, items []model.Receta) error
	ListRecetasByComida(ctx context.Context, comidaID uuid.UUID) ([]model.Receta, error)
	// ListRecetasByGrupo finds every comida whose recipe uses the grupo,
	// for transitive cost recomputation.
	ListRecetasByGrupo(ctx context.Context, grupoID uuid.UUID) ([]model.Receta, error)
	ListRecetasByComidas(ctx context.Context, comidaIDs []uuid.UUID) ([]model.Receta, error)

	// ListGruposByProducto finds every grupo containing the producto as an
	// active item.
	ListGruposByProducto(ctx context.Context, productoID uuid.UUID) ([]model.InsumoGrupo, error)

	DB() *gorm.DB
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) DB() *gorm.DB { return r.db }

func (r *recetaRepo) CreateGrupo(ctx context.Context, g *model.InsumoGrupo) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *recetaRepo) FindGrupoByID(ctx context.Context, id uuid.UUID) (*model.InsumoGrupo, error) {
	var g model.InsumoGrupo
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&g, id).Error
	return &g, err
}

func (r *recetaRepo) FindGrupoByNombre(ctx context.Context, nombre string) (*model.InsumoGrupo, error) {
	var g model.InsumoGrupo
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&g).Error
	return &g, err
}

func (r *recetaRepo) FindGruposByIDs(ctx context.Context, ids []uuid.UUID) ([]model.InsumoGrupo, error) {
	var grupos []model.InsumoGrupo
	err := r.db.WithContext(ctx).Preload("Items.Producto").Where("id IN ?", ids).Find(&grupos).Error
	return grupos, err
}

func (r *recetaRepo) ListGrupos(ctx context.Context) ([]model.InsumoGrupo, error) {
	var grupos []model.InsumoGrupo
	err := r.db.WithContext(ctx).Preload("Items.Producto").Order("nombre ASC").Find(&grupos).Error
	return grupos, err
}

func (r *recetaRepo) UpdateGrupo(ctx context.Context, g *model.InsumoGrupo) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *recetaRepo) CreateGrupoItem(ctx context.Context, item *model.InsumoGrupoItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *recetaRepo) FindGrupoItemByID(ctx context.Context, id uuid.UUID) (*model.InsumoGrupoItem, error) {
	var item model.InsumoGrupoItem
	err := r.db.WithContext(ctx).Preload("Producto").First(&item, id).Error
	return &item, err
}

func (r *recetaRepo) UpdateGrupoItem(ctx context.Context, item *model.InsumoGrupoItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *recetaRepo) DeleteGrupoItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.InsumoGrupoItem{}, id).Error
}

func (r *recetaRepo) ReplaceRecetaTx(tx *gorm.DB, comidaID uuid.UUID, items []model.Receta) error {
	if err := tx.Where("comida_id = ?", comidaID).Delete(&model.Receta{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *recetaRepo) ListRecetasByComida(ctx context.Context, comidaID uuid.UUID) ([]model.Receta, error) {
	var recetas []model.Receta
	err := r.db.WithContext(ctx).Preload("Grupo.Items.Producto").
		Where("comida_id = ?", comidaID).
		Find(&recetas).Error
	return recetas, err
}

func (r *recetaRepo) ListRecetasByGrupo(ctx context.Context, grupoID uuid.UUID) ([]model.Receta, error) {
	var recetas []model.Receta
	err := r.db.WithContext(ctx).Where("grupo_id = ?", grupoID).Find(&recetas).Error
	return recetas, err
}

func (r *recetaRepo) ListRecetasByComidas(ctx context.Context, comidaIDs []uuid.UUID) ([]model.Receta, error) {
	var recetas []model.Receta
	err := r.db.WithContext(ctx).Preload("Grupo.Items.Producto").
		Where("comida_id IN ?", comidaIDs).
		Find(&recetas).Error
	return recetas, err
}

func (r *recetaRepo) ListGruposByProducto(ctx context.Context, productoID uuid.UUID) ([]model.InsumoGrupo, error) {
	var grupos []model.InsumoGrupo
	err := r.db.WithContext(ctx).
		Joins("JOIN insumo_grupo_items ON insumo_grupo_items.grupo_id = insumo_grupos.id").
		Where("insumo_grupo_items.producto_id = ? AND insumo_grupo_items.activo = true", productoID).
		Find(&grupos).Error
	return grupos, err
}
