package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/pdf"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct {
	svc     service.VentaService
	tickets *pdf.TicketRenderer
}

func NewVentasHandler(svc service.VentaService, tickets *pdf.TicketRenderer) *VentasHandler {
	return &VentasHandler{svc: svc, tickets: tickets}
}

func (h *VentasHandler) Crear(c *gin.Context) {
	usuarioID, _, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.CrearVenta(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	usuarioID, rol, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), usuarioID, rol, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) AgregarItem(c *gin.Context) {
	usuarioID, rol, ok := currentUser(c)
	if !ok {
		return
	}
	ventaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), usuarioID, rol, ventaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) ActualizarItem(c *gin.Context) {
	usuarioID, rol, ok := currentUser(c)
	if !ok {
		return
	}
	ventaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var req dto.ActualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarItem(c.Request.Context(), usuarioID, rol, ventaID, itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) EliminarItem(c *gin.Context) {
	usuarioID, rol, ok := currentUser(c)
	if !ok {
		return
	}
	ventaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.svc.EliminarItem(c.Request.Context(), usuarioID, rol, ventaID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Confirmar(c *gin.Context) {
	usuarioID, rol, ok := currentUser(c)
	if !ok {
		return
	}
	ventaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ConfirmarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConfirmarVenta(c.Request.Context(), usuarioID, rol, ventaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Eliminar(c *gin.Context) {
	usuarioID, rol, ok := currentUser(c)
	if !ok {
		return
	}
	ventaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarVenta(c.Request.Context(), usuarioID, rol, ventaID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ticket streams the sale receipt as a PDF. Only confirmed sales have one.
func (h *VentasHandler) Ticket(c *gin.Context) {
	usuarioID, rol, ok := currentUser(c)
	if !ok {
		return
	}
	ventaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	venta, err := h.svc.ObtenerVenta(c.Request.Context(), usuarioID, rol, ventaID)
	if err != nil {
		respondError(c, err)
		return
	}
	if venta.Estado != model.VentaConfirmada {
		respondError(c, apierror.Conflict("la venta no esta confirmada"))
		return
	}
	data, err := h.tickets.Render(venta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="ticket.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
