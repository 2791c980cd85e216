package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	CodigoInterno string          `json:"codigo_interno" validate:"required,min=2,max=40"`
	CodigoBarras  *string         `json:"codigo_barras"  validate:"omitempty,min=8,max=18"`
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=120"`
	Descripcion   *string         `json:"descripcion"`
	Tipo          string          `json:"tipo"           validate:"required,oneof=REVENTA INSUMO COMIDA"`
	UnidadBase    string          `json:"unidad_base"    validate:"required"`
	PrecioCosto   decimal.Decimal `json:"precio_costo"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	Rendimiento   int             `json:"rendimiento"    validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=120"`
	Descripcion  *string          `json:"descripcion"`
	CodigoBarras *string          `json:"codigo_barras" validate:"omitempty,min=8,max=18"`
	UnidadBase   *string          `json:"unidad_base"`
	PrecioCosto  *decimal.Decimal `json:"precio_costo"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	Rendimiento  *int             `json:"rendimiento"   validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Search string `form:"search"` // matches nombre, codigo_interno or codigo_barras
	Tipo   string `form:"tipo"   validate:"omitempty,oneof=REVENTA INSUMO COMIDA"`
	Activo string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID            string          `json:"id"`
	CodigoInterno string          `json:"codigo_interno"`
	CodigoBarras  *string         `json:"codigo_barras"`
	Nombre        string          `json:"nombre"`
	Descripcion   *string         `json:"descripcion"`
	Tipo          string          `json:"tipo"`
	UnidadBase    string          `json:"unidad_base"`
	PrecioCosto   decimal.Decimal `json:"precio_costo"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	Rendimiento   int             `json:"rendimiento"`
	Activo        bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ConsultaPreciosResponse is returned by the public price check endpoint.
type ConsultaPreciosResponse struct {
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	UnidadBase  string          `json:"unidad_base"`
}
