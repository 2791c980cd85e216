package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearGrupoRequest struct {
	Nombre          string `json:"nombre"           validate:"required,min=2,max=120"`
	ConsumoStrategy string `json:"consumo_strategy" validate:"omitempty,oneof=PRIORITY LOWEST_COST"`
}

type ActualizarGrupoRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=2,max=120"`
	ConsumoStrategy *string `json:"consumo_strategy" validate:"omitempty,oneof=PRIORITY LOWEST_COST"`
	Activo          *bool   `json:"activo"`
}

type AgregarGrupoItemRequest struct {
	ProductoID uuid.UUID `json:"producto_id" validate:"required"`
	Prioridad  *int      `json:"prioridad"   validate:"omitempty,min=0"`
}

type ActualizarGrupoItemRequest struct {
	Prioridad *int  `json:"prioridad" validate:"omitempty,min=0"`
	Activo    *bool `json:"activo"`
}

type DefinirRecetaItemRequest struct {
	GrupoID      uuid.UUID       `json:"grupo_id"      validate:"required"`
	CantidadBase decimal.Decimal `json:"cantidad_base" validate:"required"`
}

// DefinirRecetaRequest replaces the full recipe of a COMIDA product.
type DefinirRecetaRequest struct {
	Items []DefinirRecetaItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GrupoItemResponse struct {
	ID          string          `json:"id"`
	ProductoID  string          `json:"producto_id"`
	Producto    string          `json:"producto"`
	UnidadBase  string          `json:"unidad_base"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	Prioridad   *int            `json:"prioridad,omitempty"`
	Activo      bool            `json:"activo"`
}

type GrupoResponse struct {
	ID              string              `json:"id"`
	Nombre          string              `json:"nombre"`
	ConsumoStrategy string              `json:"consumo_strategy"`
	Activo          bool                `json:"activo"`
	Items           []GrupoItemResponse `json:"items"`
}

type RecetaItemResponse struct {
	GrupoID      string          `json:"grupo_id"`
	Grupo        string          `json:"grupo"`
	CantidadBase decimal.Decimal `json:"cantidad_base"`
	// CostoUnitario is the cost contributed by this grupo per yield unit,
	// resolved with the grupo's strategy at read time.
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

type RecetaResponse struct {
	ComidaID    string               `json:"comida_id"`
	Comida      string               `json:"comida"`
	Rendimiento int                  `json:"rendimiento"`
	Items       []RecetaItemResponse `json:"items"`
	CostoTotal  decimal.Decimal      `json:"costo_total"`
	// CostoPorcion is null while the recipe yields zero portions.
	CostoPorcion *decimal.Decimal `json:"costo_porcion"`
}

type PosiblesResponse struct {
	ComidaID  string `json:"comida_id"`
	Comida    string `json:"comida"`
	Porciones int    `json:"porciones"`
}
