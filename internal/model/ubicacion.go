package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de ubicacion fisica de stock.
const (
	UbicacionBodega    = "BODEGA"
	UbicacionSalaVenta = "SALA_VENTA"
)

// Ubicacion is a physical stock location. One SALA_VENTA and one BODEGA are
// provisioned at startup when none exist.
type Ubicacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Tipo      string    `gorm:"type:varchar(20);not null"`
	Activa    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Ubicacion) TableName() string { return "ubicaciones" }
