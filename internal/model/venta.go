package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de venta. ANULADA is reserved: no exposed operation transitions
// into it, but non-editable guards still reject it.
const (
	VentaEnEdicion  = "EN_EDICION"
	VentaConfirmada = "CONFIRMADA"
	VentaAnulada    = "ANULADA"
)

// Medios de pago aceptados al confirmar.
const (
	PagoEfectivo = "EFECTIVO"
	PagoTarjeta  = "TARJETA"
)

// Venta is a cart-like draft that decrements stock only on confirmation.
type Venta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HistorialID uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'EN_EDICION'"`
	// TotalVenta and CantidadTotal are recomputed after every item write,
	// inside the same transaction.
	TotalVenta        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CantidadTotal     int             `gorm:"not null;default:0"`
	MedioPago         *string         `gorm:"type:varchar(20)"`
	FechaConfirmacion *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Historial *HistorialCaja `gorm:"foreignKey:HistorialID"`
	Items     []VentaItem    `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem carries the price snapshot taken when the product was added.
// Unique per (venta, producto): re-adding sums quantities and re-snapshots
// the price, last write wins.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_venta_producto"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_venta_producto"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }
