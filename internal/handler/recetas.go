package handler

import (
	"net/http"

	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type RecetasHandler struct{ svc service.RecetaService }

func NewRecetasHandler(svc service.RecetaService) *RecetasHandler {
	return &RecetasHandler{svc: svc}
}

func (h *RecetasHandler) CrearGrupo(c *gin.Context) {
	var req dto.CrearGrupoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearGrupo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RecetasHandler) ObtenerGrupo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerGrupo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) ListarGrupos(c *gin.Context) {
	resp, err := h.svc.ListarGrupos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) ActualizarGrupo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarGrupoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarGrupo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) AgregarGrupoItem(c *gin.Context) {
	grupoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarGrupoItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarGrupoItem(c.Request.Context(), grupoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RecetasHandler) ActualizarGrupoItem(c *gin.Context) {
	grupoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var req dto.ActualizarGrupoItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarGrupoItem(c.Request.Context(), grupoID, itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) EliminarGrupoItem(c *gin.Context) {
	grupoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.svc.EliminarGrupoItem(c.Request.Context(), grupoID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecetasHandler) DefinirReceta(c *gin.Context) {
	comidaID, ok := parseIDParam(c, "comidaId")
	if !ok {
		return
	}
	var req dto.DefinirRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.DefinirReceta(c.Request.Context(), comidaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Costos(c *gin.Context) {
	comidaID, ok := parseIDParam(c, "comidaId")
	if !ok {
		return
	}
	resp, err := h.svc.Costos(c.Request.Context(), comidaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) PosiblesMasivo(c *gin.Context) {
	resp, err := h.svc.PosiblesMasivo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
