package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlojamientoHandler struct{ svc service.AlojamientoService }

func NewAlojamientoHandler(svc service.AlojamientoService) *AlojamientoHandler {
	return &AlojamientoHandler{svc: svc}
}

func (h *AlojamientoHandler) CrearPiso(c *gin.Context) {
	var req dto.CrearPisoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPiso(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) ListarPisos(c *gin.Context) {
	resp, err := h.svc.ListarPisos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) CrearHabitacion(c *gin.Context) {
	var req dto.CrearHabitacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearHabitacion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) ObtenerHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerHabitacion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) ListarHabitaciones(c *gin.Context) {
	var pisoID uuid.UUID
	if raw := c.Query("piso_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("piso_id invalido"))
			return
		}
		pisoID = id
	}
	resp, err := h.svc.ListarHabitaciones(c.Request.Context(), pisoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) ActualizarHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarHabitacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarHabitacion(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) DesactivarHabitacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarHabitacion(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlojamientoHandler) CrearCama(c *gin.Context) {
	habitacionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearCamaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCama(c.Request.Context(), habitacionID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) EliminarCama(c *gin.Context) {
	habitacionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	camaID, ok := parseIDParam(c, "camaId")
	if !ok {
		return
	}
	if err := h.svc.EliminarCama(c.Request.Context(), habitacionID, camaID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlojamientoHandler) CrearComodidad(c *gin.Context) {
	var req dto.CrearComodidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearComodidad(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) ListarComodidades(c *gin.Context) {
	resp, err := h.svc.ListarComodidades(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) AgregarInventarioHabitacion(c *gin.Context) {
	habitacionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearInventarioHabitacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarInventarioHabitacion(c.Request.Context(), habitacionID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) ListarInventarioHabitacion(c *gin.Context) {
	habitacionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarInventarioHabitacion(c.Request.Context(), habitacionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) EliminarInventarioHabitacion(c *gin.Context) {
	habitacionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.svc.EliminarInventarioHabitacion(c.Request.Context(), habitacionID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlojamientoHandler) CrearHuesped(c *gin.Context) {
	var req dto.CrearHuespedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearHuesped(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) ActualizarHuesped(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarHuespedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarHuesped(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) ListarHuespedes(c *gin.Context) {
	resp, err := h.svc.ListarHuespedes(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) AsignarCama(c *gin.Context) {
	var req dto.AsignarCamaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarCama(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) LiberarCama(c *gin.Context) {
	asignacionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.LiberarCama(c.Request.Context(), asignacionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) ListarAsignaciones(c *gin.Context) {
	resp, err := h.svc.ListarAsignaciones(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) CrearReserva(c *gin.Context) {
	var req dto.CrearReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearReserva(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) ConfirmarReserva(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ConfirmarReserva(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) CancelarReserva(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.CancelarReserva(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) ListarReservas(c *gin.Context) {
	var habitacionID *uuid.UUID
	if raw := c.Query("habitacion_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("habitacion_id invalido"))
			return
		}
		habitacionID = &id
	}
	resp, err := h.svc.ListarReservas(c.Request.Context(), habitacionID, c.Query("estado"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlojamientoHandler) RegistrarVenta(c *gin.Context) {
	usuarioID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.RegistrarVentaAlojamientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVentaAlojamiento(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlojamientoHandler) ListarVentas(c *gin.Context) {
	var historialID *uuid.UUID
	if raw := c.Query("historial_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("historial_id invalido"))
			return
		}
		historialID = &id
	}
	resp, err := h.svc.ListarVentasAlojamiento(c.Request.Context(), historialID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
