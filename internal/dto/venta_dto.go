package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	ProductoID uuid.UUID `json:"producto_id" validate:"required"`
	Cantidad   int       `json:"cantidad"    validate:"required,gt=0"`
}

type ActualizarItemRequest struct {
	Cantidad int `json:"cantidad" validate:"required,gt=0"`
}

type ConfirmarVentaRequest struct {
	MedioPago string `json:"medio_pago" validate:"required,oneof=EFECTIVO TARJETA"`
}

// ─── Filter DTOs ─────────────────────────────────────────────────────────────

type VentaFilter struct {
	Estado      string `form:"estado"       validate:"omitempty,oneof=EN_EDICION CONFIRMADA ANULADA"`
	HistorialID string `form:"historial_id" validate:"omitempty,uuid"`
	Desde       string `form:"desde"        validate:"omitempty,datetime=2006-01-02"`
	Hasta       string `form:"hasta"        validate:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID                string              `json:"id"`
	HistorialID       string              `json:"historial_id"`
	UsuarioID         string              `json:"usuario_id"`
	Estado            string              `json:"estado"`
	TotalVenta        decimal.Decimal     `json:"total_venta"`
	CantidadTotal     int                 `json:"cantidad_total"`
	MedioPago         *string             `json:"medio_pago,omitempty"`
	FechaConfirmacion *string             `json:"fecha_confirmacion,omitempty"`
	Items             []VentaItemResponse `json:"items"`
	CreatedAt         string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
