package handler

import (
	"net/http"

	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type ProductosHandler struct {
	svc service.ProductoService
	rdb *redis.Client // nil when the cache is disabled
}

func NewProductosHandler(svc service.ProductoService, rdb *redis.Client) *ProductosHandler {
	return &ProductosHandler{svc: svc, rdb: rdb}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	antes, _ := h.svc.Obtener(c.Request.Context(), id)
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if antes != nil {
		h.invalidarPrecio(c, antes.CodigoBarras)
	}
	h.invalidarPrecio(c, resp.CodigoBarras)
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidarPrecio(c, p.CodigoBarras)
	c.Status(http.StatusNoContent)
}

func (h *ProductosHandler) Reactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	if p, err := h.svc.Obtener(c.Request.Context(), id); err == nil {
		h.invalidarPrecio(c, p.CodigoBarras)
	}
	c.Status(http.StatusNoContent)
}

// invalidarPrecio drops the public price-check cache entry for a barcode so a
// catalog change is visible before the TTL expires.
func (h *ProductosHandler) invalidarPrecio(c *gin.Context, barcode *string) {
	if h.rdb == nil || barcode == nil || *barcode == "" {
		return
	}
	if err := h.rdb.Del(c.Request.Context(), "precio:"+*barcode).Err(); err != nil {
		log.Warn().Err(err).Str("barcode", *barcode).Msg("no se pudo invalidar el cache de precios")
	}
}
