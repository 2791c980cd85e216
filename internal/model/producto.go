package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	TipoReventa = "REVENTA"
	TipoInsumo  = "INSUMO"
	TipoComida  = "COMIDA"
)

// Producto covers resale goods, raw ingredients and prepared foods.
// For tipo=COMIDA, PrecioCosto is a denormalized cache recomputed from its
// recetas every time a group, item or receta that affects it changes.
type Producto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoInterno string    `gorm:"uniqueIndex;not null"`
	CodigoBarras  *string   `gorm:"uniqueIndex"`
	Nombre        string    `gorm:"index;not null"`
	Descripcion   *string
	Tipo          string          `gorm:"type:varchar(20);not null"`
	UnidadBase    string          `gorm:"not null;default:'unidad'"`
	PrecioCosto   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioVenta   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Rendimiento is the portion yield of a COMIDA recipe batch.
	Rendimiento int  `gorm:"not null;default:0"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Producto) TableName() string { return "productos" }
