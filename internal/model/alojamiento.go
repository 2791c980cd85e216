package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de reserva.
const (
	ReservaPendiente  = "PENDIENTE"
	ReservaConfirmada = "CONFIRMADA"
	ReservaCancelada  = "CANCELADA"
)

// PisoZona is one floor or zone of the hostel layout.
type PisoZona struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Orden     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PisoZona) TableName() string { return "piso_zonas" }

// Habitacion is a room drawn as an axis-aligned rectangle on its floor.
// Overlap with sibling rooms is rejected unless explicitly allowed.
type Habitacion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PisoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre string    `gorm:"not null"`
	X      int       `gorm:"not null"`
	Y      int       `gorm:"not null"`
	Ancho  int       `gorm:"not null"`
	Alto   int       `gorm:"not null"`
	Activa bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Piso        *PisoZona   `gorm:"foreignKey:PisoID"`
	Camas       []Cama      `gorm:"foreignKey:HabitacionID"`
	Comodidades []Comodidad `gorm:"many2many:habitacion_comodidades"`
}

func (Habitacion) TableName() string { return "habitaciones" }

// Cama is one bed inside a room.
type Cama struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HabitacionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habitacion_codigo"`
	Codigo       string    `gorm:"not null;uniqueIndex:idx_habitacion_codigo"`
	Tipo         string    `gorm:"type:varchar(20);not null;default:'INDIVIDUAL'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Cama) TableName() string { return "camas" }

// Comodidad is an amenity attachable to rooms.
type Comodidad struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Comodidad) TableName() string { return "comodidades" }

// InventarioHabitacion lists furniture/equipment kept in a room.
type InventarioHabitacion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HabitacionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Descripcion  string    `gorm:"not null"`
	Cantidad     int       `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (InventarioHabitacion) TableName() string { return "inventario_habitaciones" }

// Huesped is a hostel guest.
type Huesped struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Documento string    `gorm:"uniqueIndex;not null"`
	Telefono  *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Huesped) TableName() string { return "huespedes" }

// AsignacionHabitacion places a guest in a bed for an open-ended stay.
type AsignacionHabitacion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CamaID      uuid.UUID `gorm:"type:uuid;not null;index"`
	HuespedID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaInicio time.Time `gorm:"not null"`
	FechaFin    *time.Time
	Activa      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cama    *Cama    `gorm:"foreignKey:CamaID"`
	Huesped *Huesped `gorm:"foreignKey:HuespedID"`
}

func (AsignacionHabitacion) TableName() string { return "asignacion_habitaciones" }

// ReservaHabitacion is a dated room booking.
type ReservaHabitacion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HabitacionID uuid.UUID `gorm:"type:uuid;not null;index"`
	HuespedID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaInicio  time.Time `gorm:"not null"`
	FechaFin     time.Time `gorm:"not null"`
	Estado       string    `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Habitacion *Habitacion `gorm:"foreignKey:HabitacionID"`
	Huesped    *Huesped    `gorm:"foreignKey:HuespedID"`
}

func (ReservaHabitacion) TableName() string { return "reserva_habitaciones" }

// VentaAlojamiento records an accommodation charge against the open shift
// of the cashier who registered it.
type VentaAlojamiento struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HistorialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	HuespedID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReservaID   *uuid.UUID      `gorm:"type:uuid"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MedioPago   string          `gorm:"type:varchar(20);not null"`
	Descripcion *string
	CreatedAt   time.Time

	Huesped *Huesped `gorm:"foreignKey:HuespedID"`
}

func (VentaAlojamiento) TableName() string { return "venta_alojamientos" }
