package service

import (
	"context"
	"errors"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlojamientoService interface {
	CrearPiso(ctx context.Context, req dto.CrearPisoRequest) (*dto.PisoResponse, error)
	ListarPisos(ctx context.Context) ([]dto.PisoResponse, error)

	CrearHabitacion(ctx context.Context, req dto.CrearHabitacionRequest) (*dto.HabitacionResponse, error)
	ObtenerHabitacion(ctx context.Context, id uuid.UUID) (*dto.HabitacionResponse, error)
	ListarHabitaciones(ctx context.Context, pisoID uuid.UUID) ([]dto.HabitacionResponse, error)
	ActualizarHabitacion(ctx context.Context, id uuid.UUID, req dto.ActualizarHabitacionRequest) (*dto.HabitacionResponse, error)
	DesactivarHabitacion(ctx context.Context, id uuid.UUID) error

	CrearCama(ctx context.Context, habitacionID uuid.UUID, req dto.CrearCamaRequest) (*dto.HabitacionResponse, error)
	EliminarCama(ctx context.Context, habitacionID, camaID uuid.UUID) error

	CrearComodidad(ctx context.Context, req dto.CrearComodidadRequest) (*model.Comodidad, error)
	ListarComodidades(ctx context.Context) ([]model.Comodidad, error)

	AgregarInventarioHabitacion(ctx context.Context, habitacionID uuid.UUID, req dto.CrearInventarioHabitacionRequest) ([]model.InventarioHabitacion, error)
	ListarInventarioHabitacion(ctx context.Context, habitacionID uuid.UUID) ([]model.InventarioHabitacion, error)
	EliminarInventarioHabitacion(ctx context.Context, habitacionID, itemID uuid.UUID) error

	CrearHuesped(ctx context.Context, req dto.CrearHuespedRequest) (*dto.HuespedResponse, error)
	ActualizarHuesped(ctx context.Context, id uuid.UUID, req dto.ActualizarHuespedRequest) (*dto.HuespedResponse, error)
	ListarHuespedes(ctx context.Context, search string) ([]dto.HuespedResponse, error)

	AsignarCama(ctx context.Context, req dto.AsignarCamaRequest) (*dto.AsignacionResponse, error)
	LiberarCama(ctx context.Context, asignacionID uuid.UUID) (*dto.AsignacionResponse, error)
	ListarAsignaciones(ctx context.Context) ([]dto.AsignacionResponse, error)

	CrearReserva(ctx context.Context, req dto.CrearReservaRequest) (*dto.ReservaResponse, error)
	ConfirmarReserva(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error)
	CancelarReserva(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error)
	ListarReservas(ctx context.Context, habitacionID *uuid.UUID, estado string) ([]dto.ReservaResponse, error)

	RegistrarVentaAlojamiento(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaAlojamientoRequest) (*dto.VentaAlojamientoResponse, error)
	ListarVentasAlojamiento(ctx context.Context, historialID *uuid.UUID) ([]dto.VentaAlojamientoResponse, error)
}

type alojamientoService struct {
	repo     repository.AlojamientoRepository
	cajaRepo repository.CajaRepository
	caja     CajaService
}

func NewAlojamientoService(
	repo repository.AlojamientoRepository,
	cajaRepo repository.CajaRepository,
	caja CajaService,
) AlojamientoService {
	return &alojamientoService{repo: repo, cajaRepo: cajaRepo, caja: caja}
}

// hayColision reports whether two axis-aligned rectangles intersect with
// positive area. Touching edges do not collide.
func hayColision(ax, ay, aw, ah, bx, by, bw, bh int) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

// ── Pisos ────────────────────────────────────────────────────────────────────

func (s *alojamientoService) CrearPiso(ctx context.Context, req dto.CrearPisoRequest) (*dto.PisoResponse, error) {
	p := &model.PisoZona{Nombre: req.Nombre, Orden: req.Orden}
	if err := s.repo.CreatePiso(ctx, p); err != nil {
		return nil, err
	}
	return &dto.PisoResponse{ID: p.ID.String(), Nombre: p.Nombre, Orden: p.Orden}, nil
}

func (s *alojamientoService) ListarPisos(ctx context.Context) ([]dto.PisoResponse, error) {
	pisos, err := s.repo.ListPisos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PisoResponse, 0, len(pisos))
	for _, p := range pisos {
		out = append(out, dto.PisoResponse{ID: p.ID.String(), Nombre: p.Nombre, Orden: p.Orden})
	}
	return out, nil
}

// ── Habitaciones ─────────────────────────────────────────────────────────────

func (s *alojamientoService) verificarColision(ctx context.Context, pisoID uuid.UUID, excluirID *uuid.UUID, x, y, ancho, alto int) error {
	vecinas, err := s.repo.ListHabitacionesByPiso(ctx, pisoID)
	if err != nil {
		return err
	}
	for _, v := range vecinas {
		if excluirID != nil && v.ID == *excluirID {
			continue
		}
		if hayColision(x, y, ancho, alto, v.X, v.Y, v.Ancho, v.Alto) {
			return apierror.Conflict("la habitacion se solapa con " + v.Nombre)
		}
	}
	return nil
}

func (s *alojamientoService) CrearHabitacion(ctx context.Context, req dto.CrearHabitacionRequest) (*dto.HabitacionResponse, error) {
	if _, err := s.repo.FindPisoByID(ctx, req.PisoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("piso no encontrado")
		}
		return nil, err
	}
	if !req.PermitirSolape {
		if err := s.verificarColision(ctx, req.PisoID, nil, req.X, req.Y, req.Ancho, req.Alto); err != nil {
			return nil, err
		}
	}

	h := &model.Habitacion{
		PisoID: req.PisoID,
		Nombre: req.Nombre,
		X:      req.X,
		Y:      req.Y,
		Ancho:  req.Ancho,
		Alto:   req.Alto,
		Activa: true,
	}
	if err := s.repo.CreateHabitacion(ctx, h); err != nil {
		return nil, err
	}
	if len(req.ComodidadIDs) > 0 {
		comodidades, err := s.repo.FindComodidadesByIDs(ctx, req.ComodidadIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceComodidades(ctx, h, comodidades); err != nil {
			return nil, err
		}
	}
	return s.ObtenerHabitacion(ctx, h.ID)
}

func (s *alojamientoService) findHabitacion(ctx context.Context, id uuid.UUID) (*model.Habitacion, error) {
	h, err := s.repo.FindHabitacionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("habitacion no encontrada")
		}
		return nil, err
	}
	return h, nil
}

func (s *alojamientoService) ObtenerHabitacion(ctx context.Context, id uuid.UUID) (*dto.HabitacionResponse, error) {
	h, err := s.findHabitacion(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.habitacionToResponse(ctx, h)
	return &resp, nil
}

func (s *alojamientoService) ListarHabitaciones(ctx context.Context, pisoID uuid.UUID) ([]dto.HabitacionResponse, error) {
	habitaciones, err := s.repo.ListHabitacionesByPiso(ctx, pisoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HabitacionResponse, 0, len(habitaciones))
	for i := range habitaciones {
		out = append(out, s.habitacionToResponse(ctx, &habitaciones[i]))
	}
	return out, nil
}

func (s *alojamientoService) ActualizarHabitacion(ctx context.Context, id uuid.UUID, req dto.ActualizarHabitacionRequest) (*dto.HabitacionResponse, error) {
	h, err := s.findHabitacion(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		h.Nombre = *req.Nombre
	}
	if req.X != nil {
		h.X = *req.X
	}
	if req.Y != nil {
		h.Y = *req.Y
	}
	if req.Ancho != nil {
		h.Ancho = *req.Ancho
	}
	if req.Alto != nil {
		h.Alto = *req.Alto
	}

	if !req.PermitirSolape {
		if err := s.verificarColision(ctx, h.PisoID, &h.ID, h.X, h.Y, h.Ancho, h.Alto); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateHabitacion(ctx, h); err != nil {
		return nil, err
	}
	if req.ComodidadIDs != nil {
		comodidades, err := s.repo.FindComodidadesByIDs(ctx, req.ComodidadIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceComodidades(ctx, h, comodidades); err != nil {
			return nil, err
		}
	}
	return s.ObtenerHabitacion(ctx, id)
}

func (s *alojamientoService) DesactivarHabitacion(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findHabitacion(ctx, id); err != nil {
		return err
	}
	return s.repo.DesactivarHabitacion(ctx, id)
}

// ── Camas ────────────────────────────────────────────────────────────────────

func (s *alojamientoService) CrearCama(ctx context.Context, habitacionID uuid.UUID, req dto.CrearCamaRequest) (*dto.HabitacionResponse, error) {
	h, err := s.findHabitacion(ctx, habitacionID)
	if err != nil {
		return nil, err
	}
	for _, c := range h.Camas {
		if c.Codigo == req.Codigo {
			return nil, apierror.Conflict("ya existe una cama " + req.Codigo + " en la habitacion")
		}
	}
	tipo := req.Tipo
	if tipo == "" {
		tipo = "INDIVIDUAL"
	}
	if err := s.repo.CreateCama(ctx, &model.Cama{
		HabitacionID: habitacionID,
		Codigo:       req.Codigo,
		Tipo:         tipo,
	}); err != nil {
		return nil, err
	}
	return s.ObtenerHabitacion(ctx, habitacionID)
}

func (s *alojamientoService) EliminarCama(ctx context.Context, habitacionID, camaID uuid.UUID) error {
	cama, err := s.repo.FindCamaByID(ctx, camaID)
	if err != nil || cama.HabitacionID != habitacionID {
		return apierror.NotFound("cama no encontrada")
	}
	if _, err := s.repo.FindAsignacionActivaByCama(ctx, camaID); err == nil {
		return apierror.Conflict("la cama tiene una asignacion activa")
	}
	return s.repo.DeleteCama(ctx, camaID)
}

// ── Comodidades ──────────────────────────────────────────────────────────────

func (s *alojamientoService) CrearComodidad(ctx context.Context, req dto.CrearComodidadRequest) (*model.Comodidad, error) {
	c := &model.Comodidad{Nombre: req.Nombre}
	if err := s.repo.CreateComodidad(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *alojamientoService) ListarComodidades(ctx context.Context) ([]model.Comodidad, error) {
	return s.repo.ListComodidades(ctx)
}

// ── Inventario de habitacion ─────────────────────────────────────────────────

func (s *alojamientoService) AgregarInventarioHabitacion(ctx context.Context, habitacionID uuid.UUID, req dto.CrearInventarioHabitacionRequest) ([]model.InventarioHabitacion, error) {
	if _, err := s.findHabitacion(ctx, habitacionID); err != nil {
		return nil, err
	}
	if err := s.repo.CreateInventarioHabitacion(ctx, &model.InventarioHabitacion{
		HabitacionID: habitacionID,
		Descripcion:  req.Descripcion,
		Cantidad:     req.Cantidad,
	}); err != nil {
		return nil, err
	}
	return s.repo.ListInventarioHabitacion(ctx, habitacionID)
}

func (s *alojamientoService) ListarInventarioHabitacion(ctx context.Context, habitacionID uuid.UUID) ([]model.InventarioHabitacion, error) {
	if _, err := s.findHabitacion(ctx, habitacionID); err != nil {
		return nil, err
	}
	return s.repo.ListInventarioHabitacion(ctx, habitacionID)
}

func (s *alojamientoService) EliminarInventarioHabitacion(ctx context.Context, habitacionID, itemID uuid.UUID) error {
	items, err := s.repo.ListInventarioHabitacion(ctx, habitacionID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == itemID {
			return s.repo.DeleteInventarioHabitacion(ctx, itemID)
		}
	}
	return apierror.NotFound("item de inventario no encontrado")
}

// ── Huespedes ────────────────────────────────────────────────────────────────

func (s *alojamientoService) CrearHuesped(ctx context.Context, req dto.CrearHuespedRequest) (*dto.HuespedResponse, error) {
	if _, err := s.repo.FindHuespedByDocumento(ctx, req.Documento); err == nil {
		return nil, apierror.Conflict("ya existe un huesped con documento " + req.Documento)
	}
	h := &model.Huesped{
		Nombre:    req.Nombre,
		Documento: req.Documento,
		Telefono:  req.Telefono,
		Email:     req.Email,
	}
	if err := s.repo.CreateHuesped(ctx, h); err != nil {
		return nil, err
	}
	resp := huespedToResponse(h)
	return &resp, nil
}

func (s *alojamientoService) ActualizarHuesped(ctx context.Context, id uuid.UUID, req dto.ActualizarHuespedRequest) (*dto.HuespedResponse, error) {
	h, err := s.repo.FindHuespedByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("huesped no encontrado")
		}
		return nil, err
	}
	if req.Nombre != nil {
		h.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		h.Telefono = req.Telefono
	}
	if req.Email != nil {
		h.Email = req.Email
	}
	if err := s.repo.UpdateHuesped(ctx, h); err != nil {
		return nil, err
	}
	resp := huespedToResponse(h)
	return &resp, nil
}

func (s *alojamientoService) ListarHuespedes(ctx context.Context, search string) ([]dto.HuespedResponse, error) {
	huespedes, err := s.repo.ListHuespedes(ctx, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HuespedResponse, 0, len(huespedes))
	for i := range huespedes {
		out = append(out, huespedToResponse(&huespedes[i]))
	}
	return out, nil
}

// ── Asignaciones ─────────────────────────────────────────────────────────────

func (s *alojamientoService) AsignarCama(ctx context.Context, req dto.AsignarCamaRequest) (*dto.AsignacionResponse, error) {
	if _, err := s.repo.FindCamaByID(ctx, req.CamaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("cama no encontrada")
		}
		return nil, err
	}
	if _, err := s.repo.FindHuespedByID(ctx, req.HuespedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("huesped no encontrado")
		}
		return nil, err
	}
	if _, err := s.repo.FindAsignacionActivaByCama(ctx, req.CamaID); err == nil {
		return nil, apierror.Conflict("la cama ya esta ocupada")
	}

	a := &model.AsignacionHabitacion{
		CamaID:      req.CamaID,
		HuespedID:   req.HuespedID,
		FechaInicio: req.FechaInicio,
		Activa:      true,
	}
	if err := s.repo.CreateAsignacion(ctx, a); err != nil {
		return nil, err
	}
	full, err := s.repo.FindAsignacionByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	resp := asignacionToResponse(full)
	return &resp, nil
}

func (s *alojamientoService) LiberarCama(ctx context.Context, asignacionID uuid.UUID) (*dto.AsignacionResponse, error) {
	a, err := s.repo.FindAsignacionByID(ctx, asignacionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("asignacion no encontrada")
		}
		return nil, err
	}
	if !a.Activa {
		return nil, apierror.Conflict("la asignacion ya fue liberada")
	}
	now := time.Now()
	a.Activa = false
	a.FechaFin = &now
	if err := s.repo.UpdateAsignacion(ctx, a); err != nil {
		return nil, err
	}
	resp := asignacionToResponse(a)
	return &resp, nil
}

func (s *alojamientoService) ListarAsignaciones(ctx context.Context) ([]dto.AsignacionResponse, error) {
	as, err := s.repo.ListAsignacionesActivas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AsignacionResponse, 0, len(as))
	for i := range as {
		out = append(out, asignacionToResponse(&as[i]))
	}
	return out, nil
}

// ── Reservas ─────────────────────────────────────────────────────────────────

func (s *alojamientoService) CrearReserva(ctx context.Context, req dto.CrearReservaRequest) (*dto.ReservaResponse, error) {
	if _, err := s.findHabitacion(ctx, req.HabitacionID); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindHuespedByID(ctx, req.HuespedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("huesped no encontrado")
		}
		return nil, err
	}
	if !req.FechaFin.After(req.FechaInicio) {
		return nil, apierror.BadRequest("fecha_fin debe ser posterior a fecha_inicio")
	}

	solapadas, err := s.repo.ListReservasSolapadas(ctx, req.HabitacionID, req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}
	if len(solapadas) > 0 {
		return nil, apierror.Conflict("la habitacion ya tiene una reserva en ese rango")
	}

	rsv := &model.ReservaHabitacion{
		HabitacionID: req.HabitacionID,
		HuespedID:    req.HuespedID,
		FechaInicio:  req.FechaInicio,
		FechaFin:     req.FechaFin,
		Estado:       model.ReservaPendiente,
	}
	if err := s.repo.CreateReserva(ctx, rsv); err != nil {
		return nil, err
	}
	return s.obtenerReserva(ctx, rsv.ID)
}

func (s *alojamientoService) ConfirmarReserva(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error) {
	rsv, err := s.findReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	if rsv.Estado != model.ReservaPendiente {
		return nil, apierror.Conflict("solo una reserva PENDIENTE puede confirmarse")
	}
	rsv.Estado = model.ReservaConfirmada
	if err := s.repo.UpdateReserva(ctx, rsv); err != nil {
		return nil, err
	}
	return s.obtenerReserva(ctx, id)
}

func (s *alojamientoService) CancelarReserva(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error) {
	rsv, err := s.findReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	if rsv.Estado == model.ReservaCancelada {
		return nil, apierror.Conflict("la reserva ya fue cancelada")
	}
	rsv.Estado = model.ReservaCancelada
	if err := s.repo.UpdateReserva(ctx, rsv); err != nil {
		return nil, err
	}
	return s.obtenerReserva(ctx, id)
}

func (s *alojamientoService) ListarReservas(ctx context.Context, habitacionID *uuid.UUID, estado string) ([]dto.ReservaResponse, error) {
	reservas, err := s.repo.ListReservas(ctx, habitacionID, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservaResponse, 0, len(reservas))
	for i := range reservas {
		out = append(out, reservaToResponse(&reservas[i]))
	}
	return out, nil
}

func (s *alojamientoService) findReserva(ctx context.Context, id uuid.UUID) (*model.ReservaHabitacion, error) {
	rsv, err := s.repo.FindReservaByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("reserva no encontrada")
		}
		return nil, err
	}
	return rsv, nil
}

func (s *alojamientoService) obtenerReserva(ctx context.Context, id uuid.UUID) (*dto.ReservaResponse, error) {
	rsv, err := s.findReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := reservaToResponse(rsv)
	return &resp, nil
}

// ── Ventas de alojamiento ────────────────────────────────────────────────────

func (s *alojamientoService) RegistrarVentaAlojamiento(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaAlojamientoRequest) (*dto.VentaAlojamientoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, apierror.BadRequest("el monto debe ser mayor a cero")
	}
	historial, err := s.caja.HistorialAbierto(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	huesped, err := s.repo.FindHuespedByID(ctx, req.HuespedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("huesped no encontrado")
		}
		return nil, err
	}
	if req.ReservaID != nil {
		if _, err := s.findReserva(ctx, *req.ReservaID); err != nil {
			return nil, err
		}
	}

	venta := &model.VentaAlojamiento{
		HistorialID: historial.ID,
		HuespedID:   req.HuespedID,
		ReservaID:   req.ReservaID,
		Monto:       req.Monto,
		MedioPago:   req.MedioPago,
		Descripcion: req.Descripcion,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateVentaAlojamientoTx(tx, venta); err != nil {
			return err
		}
		return s.cajaRepo.AcumularVentaTx(tx, historial.ID, req.Monto, req.MedioPago)
	})
	if err != nil {
		return nil, err
	}
	venta.Huesped = huesped
	resp := ventaAlojamientoToResponse(venta)
	return &resp, nil
}

func (s *alojamientoService) ListarVentasAlojamiento(ctx context.Context, historialID *uuid.UUID) ([]dto.VentaAlojamientoResponse, error) {
	ventas, err := s.repo.ListVentasAlojamiento(ctx, historialID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaAlojamientoResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, ventaAlojamientoToResponse(&ventas[i]))
	}
	return out, nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func (s *alojamientoService) habitacionToResponse(ctx context.Context, h *model.Habitacion) dto.HabitacionResponse {
	resp := dto.HabitacionResponse{
		ID:     h.ID.String(),
		PisoID: h.PisoID.String(),
		Nombre: h.Nombre,
		X:      h.X,
		Y:      h.Y,
		Ancho:  h.Ancho,
		Alto:   h.Alto,
		Activa: h.Activa,
	}
	for _, c := range h.Camas {
		ocupada := false
		if _, err := s.repo.FindAsignacionActivaByCama(ctx, c.ID); err == nil {
			ocupada = true
		}
		resp.Camas = append(resp.Camas, dto.CamaResponse{
			ID:      c.ID.String(),
			Codigo:  c.Codigo,
			Tipo:    c.Tipo,
			Ocupada: ocupada,
		})
	}
	for _, c := range h.Comodidades {
		resp.Comodidades = append(resp.Comodidades, c.Nombre)
	}
	return resp
}

func huespedToResponse(h *model.Huesped) dto.HuespedResponse {
	return dto.HuespedResponse{
		ID:        h.ID.String(),
		Nombre:    h.Nombre,
		Documento: h.Documento,
		Telefono:  h.Telefono,
		Email:     h.Email,
	}
}

func asignacionToResponse(a *model.AsignacionHabitacion) dto.AsignacionResponse {
	resp := dto.AsignacionResponse{
		ID:          a.ID.String(),
		CamaID:      a.CamaID.String(),
		HuespedID:   a.HuespedID.String(),
		FechaInicio: a.FechaInicio.Format(time.RFC3339),
		Activa:      a.Activa,
	}
	if a.Huesped != nil {
		resp.Huesped = a.Huesped.Nombre
	}
	if a.FechaFin != nil {
		fin := a.FechaFin.Format(time.RFC3339)
		resp.FechaFin = &fin
	}
	return resp
}

func reservaToResponse(rsv *model.ReservaHabitacion) dto.ReservaResponse {
	resp := dto.ReservaResponse{
		ID:           rsv.ID.String(),
		HabitacionID: rsv.HabitacionID.String(),
		HuespedID:    rsv.HuespedID.String(),
		FechaInicio:  rsv.FechaInicio.Format(time.RFC3339),
		FechaFin:     rsv.FechaFin.Format(time.RFC3339),
		Estado:       rsv.Estado,
	}
	if rsv.Habitacion != nil {
		resp.Habitacion = rsv.Habitacion.Nombre
	}
	if rsv.Huesped != nil {
		resp.Huesped = rsv.Huesped.Nombre
	}
	return resp
}

func ventaAlojamientoToResponse(v *model.VentaAlojamiento) dto.VentaAlojamientoResponse {
	resp := dto.VentaAlojamientoResponse{
		ID:          v.ID.String(),
		HistorialID: v.HistorialID.String(),
		HuespedID:   v.HuespedID.String(),
		Monto:       v.Monto,
		MedioPago:   v.MedioPago,
		Descripcion: v.Descripcion,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
	if v.Huesped != nil {
		resp.Huesped = v.Huesped.Nombre
	}
	if v.ReservaID != nil {
		id := v.ReservaID.String()
		resp.ReservaID = &id
	}
	return resp
}
