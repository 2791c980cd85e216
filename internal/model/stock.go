package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento en el libro de stock.
const (
	AlteraIngreso    = "INGRESO"
	AlteraAjuste     = "AJUSTE"
	AlteraSalida     = "SALIDA"
	AlteraTraspaso   = "TRASPASO"
	AlteraConversion = "CONVERSION_PRODUCTO"
)

// Estados de un documento de inventario.
const (
	DocumentoBorrador   = "BORRADOR"
	DocumentoConfirmado = "CONFIRMADO"
	DocumentoAnulado    = "ANULADO"
)

// ProductoStock holds the current quantity of one product at one location.
// Invariant: Cantidad >= 0, enforced by service-level checks before every
// decrement inside the same transaction.
type ProductoStock struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_ubicacion"`
	UbicacionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_producto_ubicacion"`
	Cantidad    int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Ubicacion *Ubicacion `gorm:"foreignKey:UbicacionID"`
}

func (ProductoStock) TableName() string { return "producto_stocks" }

// Altera is one immutable row of the stock movement ledger. Rows are only
// ever inserted — adjustments and cancellations append new rows.
type Altera struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo       string    `gorm:"type:varchar(30);not null"`
	// Cantidad is positive for entries, negative for exits and adjustments down.
	Cantidad    int        `gorm:"not null"`
	UbicacionID *uuid.UUID `gorm:"type:uuid;index"`
	OrigenID    *uuid.UUID `gorm:"type:uuid"`
	DestinoID   *uuid.UUID `gorm:"type:uuid"`
	UsuarioID   uuid.UUID  `gorm:"type:uuid;not null"`
	Motivo      *string
	// DocumentoRef groups the rows of one multi-item operation.
	DocumentoRef *uuid.UUID `gorm:"type:uuid;index"`
	// VentaID links SALIDA rows caused by a confirmed sale.
	VentaID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Ubicacion *Ubicacion `gorm:"foreignKey:UbicacionID"`
	Origen    *Ubicacion `gorm:"foreignKey:OrigenID"`
	Destino   *Ubicacion `gorm:"foreignKey:DestinoID"`
}

func (Altera) TableName() string { return "alteras" }

// InventarioDocumento is a draft/confirmed grouping of ingreso or traspaso
// line items. Confirmation is what mutates ProductoStock and writes the
// Altera rows, all sharing the document's Ref.
type InventarioDocumento struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Ref    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Tipo   string    `gorm:"type:varchar(20);not null"` // INGRESO | TRASPASO
	Estado string    `gorm:"type:varchar(20);not null;default:'BORRADOR'"`
	// OrigenID / DestinoID apply to TRASPASO; UbicacionID to INGRESO.
	UbicacionID *uuid.UUID `gorm:"type:uuid"`
	OrigenID    *uuid.UUID `gorm:"type:uuid"`
	DestinoID   *uuid.UUID `gorm:"type:uuid"`
	UsuarioID   uuid.UUID  `gorm:"type:uuid;not null"`
	Observacion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []InventarioDocumentoItem `gorm:"foreignKey:DocumentoID"`
}

func (InventarioDocumento) TableName() string { return "inventario_documentos" }

type InventarioDocumentoItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentoID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad    int       `gorm:"not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (InventarioDocumentoItem) TableName() string { return "inventario_documento_items" }
