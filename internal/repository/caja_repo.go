package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CajaRepository covers cashier shift sessions, the physical register rows
// and the per-shift stock snapshot.
type CajaRepository interface {
	CreateHistorialTx(tx *gorm.DB, h *model.HistorialCaja) error
	FindHistorialByID(ctx context.Context, id uuid.UUID) (*model.HistorialCaja, error)
	// FindHistorialAbierto returns the user's open session, or
	// gorm.ErrRecordNotFound when none exists.
	FindHistorialAbierto(ctx context.Context, usuarioID uuid.UUID) (*model.HistorialCaja, error)
	FindHistorialAbiertoForUpdateTx(tx *gorm.DB, usuarioID uuid.UUID) (*model.HistorialCaja, error)
	ListHistoriales(ctx context.Context, usuarioID *uuid.UUID) ([]model.HistorialCaja, error)
	UpdateHistorialTx(tx *gorm.DB, h *model.HistorialCaja) error

	// AcumularVentaTx adds a confirmed sale's total to the session counters
	// inside the confirming transaction.
	AcumularVentaTx(tx *gorm.DB, historialID uuid.UUID, total decimal.Decimal, medioPago string) error

	CreateCajaTx(tx *gorm.DB, c *model.Caja) error
	FindCajaByHistorialID(ctx context.Context, historialID uuid.UUID) (*model.Caja, error)
	CerrarCajaTx(tx *gorm.DB, historialID uuid.UUID) error

	CreateSnapshotTx(tx *gorm.DB, rows []model.StockSesionCaja) error
	ListSnapshot(ctx context.Context, historialID uuid.UUID) ([]model.StockSesionCaja, error)
	// ListSnapshotTx reads the snapshot inside a caller-owned tx so the
	// closing reconciliation sees its own uncommitted rows.
	ListSnapshotTx(tx *gorm.DB, historialID uuid.UUID) ([]model.StockSesionCaja, error)
	UpdateSnapshotFinalTx(tx *gorm.DB, historialID, productoID uuid.UUID, stockFinal int) error

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateHistorialTx(tx *gorm.DB, h *model.HistorialCaja) error {
	return tx.Create(h).Error
}

func (r *cajaRepo) FindHistorialByID(ctx context.Context, id uuid.UUID) (*model.HistorialCaja, error) {
	var h model.HistorialCaja
	err := r.db.WithContext(ctx).Preload("Usuario").First(&h, id).Error
	return &h, err
}

func (r *cajaRepo) FindHistorialAbierto(ctx context.Context, usuarioID uuid.UUID) (*model.HistorialCaja, error) {
	var h model.HistorialCaja
	err := r.db.WithContext(ctx).Preload("Usuario").
		Where("usuario_id = ? AND fecha_cierre IS NULL", usuarioID).
		First(&h).Error
	return &h, err
}

func (r *cajaRepo) FindHistorialAbiertoForUpdateTx(tx *gorm.DB, usuarioID uuid.UUID) (*model.HistorialCaja, error) {
	var h model.HistorialCaja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("usuario_id = ? AND fecha_cierre IS NULL", usuarioID).
		First(&h).Error
	return &h, err
}

func (r *cajaRepo) ListHistoriales(ctx context.Context, usuarioID *uuid.UUID) ([]model.HistorialCaja, error) {
	var hs []model.HistorialCaja
	q := r.db.WithContext(ctx).Preload("Usuario")
	if usuarioID != nil {
		q = q.Where("usuario_id = ?", *usuarioID)
	}
	err := q.Order("fecha_apertura DESC").Find(&hs).Error
	return hs, err
}

func (r *cajaRepo) UpdateHistorialTx(tx *gorm.DB, h *model.HistorialCaja) error {
	return tx.Save(h).Error
}

func (r *cajaRepo) AcumularVentaTx(tx *gorm.DB, historialID uuid.UUID, total decimal.Decimal, medioPago string) error {
	cols := map[string]interface{}{
		"total_ventas": gorm.Expr("total_ventas + ?", total),
	}
	switch medioPago {
	case model.PagoEfectivo:
		cols["total_efectivo"] = gorm.Expr("total_efectivo + ?", total)
	case model.PagoTarjeta:
		cols["total_tarjeta"] = gorm.Expr("total_tarjeta + ?", total)
	}
	return tx.Model(&model.HistorialCaja{}).Where("id = ?", historialID).Updates(cols).Error
}

func (r *cajaRepo) CreateCajaTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Create(c).Error
}

func (r *cajaRepo) FindCajaByHistorialID(ctx context.Context, historialID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("historial_id = ?", historialID).First(&c).Error
	return &c, err
}

func (r *cajaRepo) CerrarCajaTx(tx *gorm.DB, historialID uuid.UUID) error {
	return tx.Model(&model.Caja{}).
		Where("historial_id = ?", historialID).
		Update("estado", model.CajaCerrada).Error
}

func (r *cajaRepo) CreateSnapshotTx(tx *gorm.DB, rows []model.StockSesionCaja) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}

func (r *cajaRepo) ListSnapshot(ctx context.Context, historialID uuid.UUID) ([]model.StockSesionCaja, error) {
	var rows []model.StockSesionCaja
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("historial_id = ?", historialID).
		Find(&rows).Error
	return rows, err
}

func (r *cajaRepo) ListSnapshotTx(tx *gorm.DB, historialID uuid.UUID) ([]model.StockSesionCaja, error) {
	var rows []model.StockSesionCaja
	err := tx.Preload("Producto").
		Where("historial_id = ?", historialID).
		Find(&rows).Error
	return rows, err
}

func (r *cajaRepo) UpdateSnapshotFinalTx(tx *gorm.DB, historialID, productoID uuid.UUID, stockFinal int) error {
	return tx.Model(&model.StockSesionCaja{}).
		Where("historial_id = ? AND producto_id = ?", historialID, productoID).
		Update("stock_final", stockFinal).Error
}
