package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SesionCajaResponse struct {
	ID            string          `json:"id"`
	UsuarioID     string          `json:"usuario_id"`
	Usuario       string          `json:"usuario"`
	MontoInicial  decimal.Decimal `json:"monto_inicial"`
	TotalVentas   decimal.Decimal `json:"total_ventas"`
	TotalEfectivo decimal.Decimal `json:"total_efectivo"`
	TotalTarjeta  decimal.Decimal `json:"total_tarjeta"`
	FechaApertura string          `json:"fecha_apertura"`
	FechaCierre   *string         `json:"fecha_cierre,omitempty"`
	Abierta       bool            `json:"abierta"`
}

type StockSesionResponse struct {
	ProductoID   string `json:"producto_id"`
	Producto     string `json:"producto"`
	StockInicial int    `json:"stock_inicial"`
	StockFinal   *int   `json:"stock_final,omitempty"`
}

type CierreCajaResponse struct {
	Sesion SesionCajaResponse    `json:"sesion"`
	Stock  []StockSesionResponse `json:"stock"`
}
