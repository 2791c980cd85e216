package repository

import (
	"context"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VentaRepository interface {
	Create(ctx context.Context, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// FindByIDForUpdateTx locks the sale row; items are loaded separately.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	UpdateTx(tx *gorm.DB, v *model.Venta) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindItem(ctx context.Context, ventaID, productoID uuid.UUID) (*model.VentaItem, error)
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.VentaItem, error)
	ListItemsTx(tx *gorm.DB, ventaID uuid.UUID) ([]model.VentaItem, error)
	UpsertItemTx(tx *gorm.DB, item *model.VentaItem) error
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.HistorialID != "" {
		q = q.Where("historial_id = ?", filter.HistorialID)
	}
	if filter.Desde != "" {
		q = q.Where("created_at >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(created_at) <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Producto").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) UpdateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Save(v).Error
}

func (r *ventaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Items cascade via the FK constraint.
	return r.db.WithContext(ctx).Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) FindItem(ctx context.Context, ventaID, productoID uuid.UUID) (*model.VentaItem, error) {
	var item model.VentaItem
	err := r.db.WithContext(ctx).
		Where("venta_id = ? AND producto_id = ?", ventaID, productoID).
		First(&item).Error
	return &item, err
}

func (r *ventaRepo) FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.VentaItem, error) {
	var item model.VentaItem
	err := r.db.WithContext(ctx).First(&item, itemID).Error
	return &item, err
}

func (r *ventaRepo) ListItemsTx(tx *gorm.DB, ventaID uuid.UUID) ([]model.VentaItem, error) {
	var items []model.VentaItem
	err := tx.Preload("Producto").
		Where("venta_id = ?", ventaID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *ventaRepo) UpsertItemTx(tx *gorm.DB, item *model.VentaItem) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "venta_id"}, {Name: "producto_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cantidad":        item.Cantidad,
			"precio_unitario": item.PrecioUnitario,
			"subtotal":        item.Subtotal,
		}),
	}).Create(item).Error
}

func (r *ventaRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.VentaItem{}, itemID).Error
}
