package repository

import (
	"context"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository covers per-location stock rows, the append-only movement
// ledger and inventory documents.
type StockRepository interface {
	// FindStock returns the stock row for (producto, ubicacion), or
	// gorm.ErrRecordNotFound when none exists yet.
	FindStock(ctx context.Context, productoID, ubicacionID uuid.UUID) (*model.ProductoStock, error)
	ListStock(ctx context.Context, filter dto.StockFilter) ([]model.ProductoStock, error)
	ListStockByUbicacion(ctx context.Context, ubicacionID uuid.UUID) ([]model.ProductoStock, error)

	// FindStockForUpdateTx loads the stock row with a row-level lock
	// (SELECT ... FOR UPDATE). Missing rows surface gorm.ErrRecordNotFound.
	FindStockForUpdateTx(tx *gorm.DB, productoID, ubicacionID uuid.UUID) (*model.ProductoStock, error)
	AddStockTx(tx *gorm.DB, productoID, ubicacionID uuid.UUID, delta int) error

	CreateAlteraTx(tx *gorm.DB, a *model.Altera) error
	ListAlteras(ctx context.Context, filter dto.MovimientoFilter) ([]model.Altera, int64, error)

	CreateDocumentoTx(tx *gorm.DB, d *model.InventarioDocumento) error
	FindDocumentoByID(ctx context.Context, id uuid.UUID) (*model.InventarioDocumento, error)
	FindDocumentoForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.InventarioDocumento, error)
	ListDocumentos(ctx context.Context, limit int) ([]model.InventarioDocumento, error)
	UpdateDocumentoEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error

	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) DB() *gorm.DB { return r.db }

func (r *stockRepo) FindStock(ctx context.Context, productoID, ubicacionID uuid.UUID) (*model.ProductoStock, error) {
	var s model.ProductoStock
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND ubicacion_id = ?", productoID, ubicacionID).
		First(&s).Error
	return &s, err
}

func (r *stockRepo) ListStock(ctx context.Context, filter dto.StockFilter) ([]model.ProductoStock, error) {
	var rows []model.ProductoStock
	q := r.db.WithContext(ctx).Preload("Producto").Preload("Ubicacion").
		Joins("JOIN productos ON productos.id = producto_stocks.producto_id")

	if filter.UbicacionID != "" {
		q = q.Where("producto_stocks.ubicacion_id = ?", filter.UbicacionID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("productos.nombre ILIKE ? OR productos.codigo_interno ILIKE ?", like, like)
	}
	if filter.SoloConStock {
		q = q.Where("producto_stocks.cantidad > 0")
	}

	err := q.Order("productos.nombre ASC").Find(&rows).Error
	return rows, err
}

func (r *stockRepo) ListStockByUbicacion(ctx context.Context, ubicacionID uuid.UUID) ([]model.ProductoStock, error) {
	var rows []model.ProductoStock
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("ubicacion_id = ?", ubicacionID).
		Find(&rows).Error
	return rows, err
}

func (r *stockRepo) FindStockForUpdateTx(tx *gorm.DB, productoID, ubicacionID uuid.UUID) (*model.ProductoStock, error) {
	var s model.ProductoStock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("producto_id = ? AND ubicacion_id = ?", productoID, ubicacionID).
		First(&s).Error
	return &s, err
}

func (r *stockRepo) AddStockTx(tx *gorm.DB, productoID, ubicacionID uuid.UUID, delta int) error {
	res := tx.Model(&model.ProductoStock{}).
		Where("producto_id = ? AND ubicacion_id = ?", productoID, ubicacionID).
		Update("cantidad", gorm.Expr("cantidad + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&model.ProductoStock{
			ProductoID:  productoID,
			UbicacionID: ubicacionID,
			Cantidad:    delta,
		}).Error
	}
	return nil
}

func (r *stockRepo) CreateAlteraTx(tx *gorm.DB, a *model.Altera) error {
	return tx.Create(a).Error
}

func (r *stockRepo) ListAlteras(ctx context.Context, filter dto.MovimientoFilter) ([]model.Altera, int64, error) {
	var alteras []model.Altera
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Altera{})

	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.UbicacionID != "" {
		q = q.Where("ubicacion_id = ? OR origen_id = ? OR destino_id = ?",
			filter.UbicacionID, filter.UbicacionID, filter.UbicacionID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
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
	err := q.Preload("Producto").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&alteras).Error
	return alteras, total, err
}

func (r *stockRepo) CreateDocumentoTx(tx *gorm.DB, d *model.InventarioDocumento) error {
	return tx.Create(d).Error
}

func (r *stockRepo) FindDocumentoByID(ctx context.Context, id uuid.UUID) (*model.InventarioDocumento, error) {
	var d model.InventarioDocumento
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&d, id).Error
	return &d, err
}

func (r *stockRepo) FindDocumentoForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.InventarioDocumento, error) {
	var d model.InventarioDocumento
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, id).Error; err != nil {
		return nil, err
	}
	err := tx.Preload("Producto").Where("documento_id = ?", id).Find(&d.Items).Error
	return &d, err
}

func (r *stockRepo) ListDocumentos(ctx context.Context, limit int) ([]model.InventarioDocumento, error) {
	var docs []model.InventarioDocumento
	err := r.db.WithContext(ctx).Preload("Items.Producto").
		Order("created_at DESC").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}

func (r *stockRepo) UpdateDocumentoEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.InventarioDocumento{}).Where("id = ?", id).Update("estado", estado).Error
}
