package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPisoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=80"`
	Orden  int    `json:"orden"  validate:"min=0"`
}

type CrearHabitacionRequest struct {
	PisoID uuid.UUID `json:"piso_id" validate:"required"`
	Nombre string    `json:"nombre"  validate:"required,min=1,max=80"`
	X      int       `json:"x"       validate:"min=0"`
	Y      int       `json:"y"       validate:"min=0"`
	Ancho  int       `json:"ancho"   validate:"required,gt=0"`
	Alto   int       `json:"alto"    validate:"required,gt=0"`
	// PermitirSolape skips the rectangle collision check against sibling
	// rooms on the same floor.
	PermitirSolape bool        `json:"permitir_solape"`
	ComodidadIDs   []uuid.UUID `json:"comodidad_ids"`
}

type ActualizarHabitacionRequest struct {
	Nombre         *string     `json:"nombre" validate:"omitempty,min=1,max=80"`
	X              *int        `json:"x"      validate:"omitempty,min=0"`
	Y              *int        `json:"y"      validate:"omitempty,min=0"`
	Ancho          *int        `json:"ancho"  validate:"omitempty,gt=0"`
	Alto           *int        `json:"alto"   validate:"omitempty,gt=0"`
	PermitirSolape bool        `json:"permitir_solape"`
	ComodidadIDs   []uuid.UUID `json:"comodidad_ids"`
}

type CrearCamaRequest struct {
	Codigo string `json:"codigo" validate:"required,min=1,max=20"`
	Tipo   string `json:"tipo"   validate:"omitempty,oneof=INDIVIDUAL MATRIMONIAL LITERA"`
}

type CrearComodidadRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=80"`
}

type CrearInventarioHabitacionRequest struct {
	Descripcion string `json:"descripcion" validate:"required,min=2"`
	Cantidad    int    `json:"cantidad"    validate:"required,gt=0"`
}

type CrearHuespedRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Documento string  `json:"documento" validate:"required,min=4,max=40"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type ActualizarHuespedRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=120"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type AsignarCamaRequest struct {
	CamaID      uuid.UUID `json:"cama_id"      validate:"required"`
	HuespedID   uuid.UUID `json:"huesped_id"   validate:"required"`
	FechaInicio time.Time `json:"fecha_inicio" validate:"required"`
}

type CrearReservaRequest struct {
	HabitacionID uuid.UUID `json:"habitacion_id" validate:"required"`
	HuespedID    uuid.UUID `json:"huesped_id"    validate:"required"`
	FechaInicio  time.Time `json:"fecha_inicio"  validate:"required"`
	FechaFin     time.Time `json:"fecha_fin"     validate:"required,gtfield=FechaInicio"`
}

type RegistrarVentaAlojamientoRequest struct {
	HuespedID   uuid.UUID       `json:"huesped_id" validate:"required"`
	ReservaID   *uuid.UUID      `json:"reserva_id"`
	Monto       decimal.Decimal `json:"monto"      validate:"required"`
	MedioPago   string          `json:"medio_pago" validate:"required,oneof=EFECTIVO TARJETA"`
	Descripcion *string         `json:"descripcion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PisoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Orden  int    `json:"orden"`
}

type CamaResponse struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
	Tipo   string `json:"tipo"`
	// Ocupada reflects an active open-ended assignment.
	Ocupada bool `json:"ocupada"`
}

type HabitacionResponse struct {
	ID          string         `json:"id"`
	PisoID      string         `json:"piso_id"`
	Nombre      string         `json:"nombre"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Ancho       int            `json:"ancho"`
	Alto        int            `json:"alto"`
	Activa      bool           `json:"activa"`
	Camas       []CamaResponse `json:"camas"`
	Comodidades []string       `json:"comodidades"`
}

type HuespedResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Documento string  `json:"documento"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
}

type AsignacionResponse struct {
	ID          string  `json:"id"`
	CamaID      string  `json:"cama_id"`
	HuespedID   string  `json:"huesped_id"`
	Huesped     string  `json:"huesped"`
	FechaInicio string  `json:"fecha_inicio"`
	FechaFin    *string `json:"fecha_fin,omitempty"`
	Activa      bool    `json:"activa"`
}

type ReservaResponse struct {
	ID           string `json:"id"`
	HabitacionID string `json:"habitacion_id"`
	Habitacion   string `json:"habitacion"`
	HuespedID    string `json:"huesped_id"`
	Huesped      string `json:"huesped"`
	FechaInicio  string `json:"fecha_inicio"`
	FechaFin     string `json:"fecha_fin"`
	Estado       string `json:"estado"`
}

type VentaAlojamientoResponse struct {
	ID          string          `json:"id"`
	HistorialID string          `json:"historial_id"`
	HuespedID   string          `json:"huesped_id"`
	Huesped     string          `json:"huesped"`
	ReservaID   *string         `json:"reserva_id,omitempty"`
	Monto       decimal.Decimal `json:"monto"`
	MedioPago   string          `json:"medio_pago"`
	Descripcion *string         `json:"descripcion,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
