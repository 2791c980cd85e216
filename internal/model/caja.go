package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de caja.
const (
	CajaAbierta = "ABIERTA"
	CajaCerrada = "CERRADA"
)

// HistorialCaja is one cashier shift. At most one open shift per usuario —
// guarded in the service and backed by a partial unique index on
// (usuario_id) WHERE fecha_cierre IS NULL.
type HistorialCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MontoInicial  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVentas   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalEfectivo decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTarjeta  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FechaApertura time.Time       `gorm:"not null"`
	FechaCierre   *time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
	Caja    *Caja    `gorm:"foreignKey:HistorialID"`
}

func (HistorialCaja) TableName() string { return "historial_cajas" }

// Caja is the physical till record tied 1:1 to a shift. A partial unique
// index on (historial_id) WHERE estado = 'ABIERTA' backs the single-open
// invariant against races the application check could miss.
type Caja struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HistorialID uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'ABIERTA'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Caja) TableName() string { return "cajas" }

// StockSesionCaja snapshots SALA_VENTA stock per active product when a
// shift opens, for reconciliation at close.
type StockSesionCaja struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HistorialID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID   uuid.UUID `gorm:"type:uuid;not null"`
	StockInicial int       `gorm:"not null"`
	StockFinal   *int
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (StockSesionCaja) TableName() string { return "stock_sesion_cajas" }
