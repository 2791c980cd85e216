package dto

import "github.com/google/uuid"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type IngresoRequest struct {
	ProductoID  uuid.UUID `json:"producto_id"  validate:"required"`
	UbicacionID uuid.UUID `json:"ubicacion_id" validate:"required"`
	Cantidad    int       `json:"cantidad"     validate:"required,gt=0"`
	Motivo      *string   `json:"motivo"`
}

type AjusteRequest struct {
	ProductoID  uuid.UUID `json:"producto_id"  validate:"required"`
	UbicacionID uuid.UUID `json:"ubicacion_id" validate:"required"`
	// Cantidad is a signed delta; zero is rejected.
	Cantidad int    `json:"cantidad" validate:"required"`
	Motivo   string `json:"motivo"   validate:"required,min=3"`
}

type TraspasoRequest struct {
	ProductoID uuid.UUID `json:"producto_id" validate:"required"`
	OrigenID   uuid.UUID `json:"origen_id"   validate:"required"`
	DestinoID  uuid.UUID `json:"destino_id"  validate:"required"`
	Cantidad   int       `json:"cantidad"    validate:"required,gt=0"`
	Motivo     *string   `json:"motivo"`
}

// ConversionRequest turns units of one product into units of another in the
// same location, as a paired salida/entrada sharing a documento ref.
type ConversionRequest struct {
	ProductoOrigenID  uuid.UUID `json:"producto_origen_id"  validate:"required"`
	ProductoDestinoID uuid.UUID `json:"producto_destino_id" validate:"required"`
	UbicacionID       uuid.UUID `json:"ubicacion_id"        validate:"required"`
	CantidadOrigen    int       `json:"cantidad_origen"     validate:"required,gt=0"`
	CantidadDestino   int       `json:"cantidad_destino"    validate:"required,gt=0"`
	Motivo            *string   `json:"motivo"`
}

type CrearUbicacionRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=80"`
	Tipo   string `json:"tipo"   validate:"required,oneof=BODEGA SALA_VENTA"`
}

type ActualizarUbicacionRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=80"`
	Activa *bool   `json:"activa"`
}

type DocumentoItemRequest struct {
	ProductoID uuid.UUID `json:"producto_id" validate:"required"`
	Cantidad   int       `json:"cantidad"    validate:"required,gt=0"`
}

type CrearDocumentoRequest struct {
	Tipo        string                 `json:"tipo"        validate:"required,oneof=INGRESO TRASPASO"`
	UbicacionID *uuid.UUID             `json:"ubicacion_id"`
	OrigenID    *uuid.UUID             `json:"origen_id"`
	DestinoID   *uuid.UUID             `json:"destino_id"`
	Observacion *string                `json:"observacion"`
	Items       []DocumentoItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ─── Filter DTOs ─────────────────────────────────────────────────────────────

type MovimientoFilter struct {
	ProductoID  string `form:"producto_id"  validate:"omitempty,uuid"`
	UbicacionID string `form:"ubicacion_id" validate:"omitempty,uuid"`
	Tipo        string `form:"tipo"         validate:"omitempty,oneof=INGRESO AJUSTE SALIDA TRASPASO CONVERSION_PRODUCTO"`
	Desde       string `form:"desde"        validate:"omitempty,datetime=2006-01-02"`
	Hasta       string `form:"hasta"        validate:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type StockFilter struct {
	UbicacionID string `form:"ubicacion_id" validate:"omitempty,uuid"`
	Search      string `form:"search"`
	SoloConStock bool  `form:"solo_con_stock"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StockResponse struct {
	ProductoID    string `json:"producto_id"`
	CodigoInterno string `json:"codigo_interno"`
	Nombre        string `json:"nombre"`
	UbicacionID   string `json:"ubicacion_id"`
	Ubicacion     string `json:"ubicacion"`
	Cantidad      int    `json:"cantidad"`
}

type MovimientoResponse struct {
	ID           string  `json:"id"`
	ProductoID   string  `json:"producto_id"`
	Producto     string  `json:"producto"`
	Tipo         string  `json:"tipo"`
	Cantidad     int     `json:"cantidad"`
	UbicacionID  *string `json:"ubicacion_id,omitempty"`
	OrigenID     *string `json:"origen_id,omitempty"`
	DestinoID    *string `json:"destino_id,omitempty"`
	UsuarioID    string  `json:"usuario_id"`
	Motivo       *string `json:"motivo,omitempty"`
	DocumentoRef *string `json:"documento_ref,omitempty"`
	VentaID      *string `json:"venta_id,omitempty"`
	Fecha        string  `json:"fecha"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type DocumentoItemResponse struct {
	ProductoID string `json:"producto_id"`
	Producto   string `json:"producto"`
	Cantidad   int    `json:"cantidad"`
}

type DocumentoResponse struct {
	ID          string                  `json:"id"`
	Ref         string                  `json:"ref"`
	Tipo        string                  `json:"tipo"`
	Estado      string                  `json:"estado"`
	UbicacionID *string                 `json:"ubicacion_id,omitempty"`
	OrigenID    *string                 `json:"origen_id,omitempty"`
	DestinoID   *string                 `json:"destino_id,omitempty"`
	UsuarioID   string                  `json:"usuario_id"`
	Observacion *string                 `json:"observacion,omitempty"`
	Items       []DocumentoItemResponse `json:"items"`
	CreatedAt   string                  `json:"created_at"`
}
