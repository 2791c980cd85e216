package service

import (
	"context"
	"testing"
	"time"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubAlojamientoRepo keeps the whole hostel layout in maps.
type stubAlojamientoRepo struct {
	pisos         map[uuid.UUID]*model.PisoZona
	habitaciones  map[uuid.UUID]*model.Habitacion
	camas         map[uuid.UUID]*model.Cama
	comodidades   map[uuid.UUID]*model.Comodidad
	invHabitacion map[uuid.UUID]*model.InventarioHabitacion
	huespedes     map[uuid.UUID]*model.Huesped
	asignaciones  map[uuid.UUID]*model.AsignacionHabitacion
	reservas      map[uuid.UUID]*model.ReservaHabitacion
	ventas        []model.VentaAlojamiento
}

func newStubAlojamientoRepo() *stubAlojamientoRepo {
	return &stubAlojamientoRepo{
		pisos:         make(map[uuid.UUID]*model.PisoZona),
		habitaciones:  make(map[uuid.UUID]*model.Habitacion),
		camas:         make(map[uuid.UUID]*model.Cama),
		comodidades:   make(map[uuid.UUID]*model.Comodidad),
		invHabitacion: make(map[uuid.UUID]*model.InventarioHabitacion),
		huespedes:     make(map[uuid.UUID]*model.Huesped),
		asignaciones:  make(map[uuid.UUID]*model.AsignacionHabitacion),
		reservas:      make(map[uuid.UUID]*model.ReservaHabitacion),
	}
}

func (r *stubAlojamientoRepo) CreatePiso(_ context.Context, p *model.PisoZona) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pisos[p.ID] = p
	return nil
}

func (r *stubAlojamientoRepo) ListPisos(_ context.Context) ([]model.PisoZona, error) {
	var out []model.PisoZona
	for _, p := range r.pisos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubAlojamientoRepo) FindPisoByID(_ context.Context, id uuid.UUID) (*model.PisoZona, error) {
	p, ok := r.pisos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubAlojamientoRepo) hydrateHabitacion(h *model.Habitacion) *model.Habitacion {
	copia := *h
	copia.Camas = nil
	for _, c := range r.camas {
		if c.HabitacionID == h.ID {
			copia.Camas = append(copia.Camas, *c)
		}
	}
	return &copia
}

func (r *stubAlojamientoRepo) CreateHabitacion(_ context.Context, h *model.Habitacion) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.habitaciones[h.ID] = h
	return nil
}

func (r *stubAlojamientoRepo) FindHabitacionByID(_ context.Context, id uuid.UUID) (*model.Habitacion, error) {
	h, ok := r.habitaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hydrateHabitacion(h), nil
}

func (r *stubAlojamientoRepo) ListHabitacionesByPiso(_ context.Context, pisoID uuid.UUID) ([]model.Habitacion, error) {
	var out []model.Habitacion
	for _, h := range r.habitaciones {
		if h.PisoID == pisoID && h.Activa {
			out = append(out, *r.hydrateHabitacion(h))
		}
	}
	return out, nil
}

func (r *stubAlojamientoRepo) UpdateHabitacion(_ context.Context, h *model.Habitacion) error {
	r.habitaciones[h.ID] = h
	return nil
}

func (r *stubAlojamientoRepo) ReplaceComodidades(_ context.Context, h *model.Habitacion, comodidades []model.Comodidad) error {
	stored, ok := r.habitaciones[h.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Comodidades = comodidades
	return nil
}

func (r *stubAlojamientoRepo) DesactivarHabitacion(_ context.Context, id uuid.UUID) error {
	if h, ok := r.habitaciones[id]; ok {
		h.Activa = false
	}
	return nil
}

func (r *stubAlojamientoRepo) CreateCama(_ context.Context, c *model.Cama) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.camas[c.ID] = c
	return nil
}

func (r *stubAlojamientoRepo) FindCamaByID(_ context.Context, id uuid.UUID) (*model.Cama, error) {
	c, ok := r.camas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubAlojamientoRepo) DeleteCama(_ context.Context, id uuid.UUID) error {
	delete(r.camas, id)
	return nil
}

func (r *stubAlojamientoRepo) CreateComodidad(_ context.Context, c *model.Comodidad) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.comodidades[c.ID] = c
	return nil
}

func (r *stubAlojamientoRepo) ListComodidades(_ context.Context) ([]model.Comodidad, error) {
	var out []model.Comodidad
	for _, c := range r.comodidades {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubAlojamientoRepo) FindComodidadesByIDs(_ context.Context, ids []uuid.UUID) ([]model.Comodidad, error) {
	var out []model.Comodidad
	for _, id := range ids {
		if c, ok := r.comodidades[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubAlojamientoRepo) CreateInventarioHabitacion(_ context.Context, i *model.InventarioHabitacion) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.invHabitacion[i.ID] = i
	return nil
}

func (r *stubAlojamientoRepo) ListInventarioHabitacion(_ context.Context, habitacionID uuid.UUID) ([]model.InventarioHabitacion, error) {
	var out []model.InventarioHabitacion
	for _, it := range r.invHabitacion {
		if it.HabitacionID == habitacionID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubAlojamientoRepo) DeleteInventarioHabitacion(_ context.Context, id uuid.UUID) error {
	delete(r.invHabitacion, id)
	return nil
}

func (r *stubAlojamientoRepo) CreateHuesped(_ context.Context, h *model.Huesped) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.huespedes[h.ID] = h
	return nil
}

func (r *stubAlojamientoRepo) FindHuespedByID(_ context.Context, id uuid.UUID) (*model.Huesped, error) {
	h, ok := r.huespedes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (r *stubAlojamientoRepo) FindHuespedByDocumento(_ context.Context, documento string) (*model.Huesped, error) {
	for _, h := range r.huespedes {
		if h.Documento == documento {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAlojamientoRepo) ListHuespedes(_ context.Context, _ string) ([]model.Huesped, error) {
	var out []model.Huesped
	for _, h := range r.huespedes {
		out = append(out, *h)
	}
	return out, nil
}

func (r *stubAlojamientoRepo) UpdateHuesped(_ context.Context, h *model.Huesped) error {
	r.huespedes[h.ID] = h
	return nil
}

func (r *stubAlojamientoRepo) CreateAsignacion(_ context.Context, a *model.AsignacionHabitacion) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.asignaciones[a.ID] = a
	return nil
}

func (r *stubAlojamientoRepo) FindAsignacionActivaByCama(_ context.Context, camaID uuid.UUID) (*model.AsignacionHabitacion, error) {
	for _, a := range r.asignaciones {
		if a.CamaID == camaID && a.Activa {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAlojamientoRepo) FindAsignacionByID(_ context.Context, id uuid.UUID) (*model.AsignacionHabitacion, error) {
	a, ok := r.asignaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *a
	copia.Huesped = r.huespedes[a.HuespedID]
	copia.Cama = r.camas[a.CamaID]
	return &copia, nil
}

func (r *stubAlojamientoRepo) ListAsignacionesActivas(_ context.Context) ([]model.AsignacionHabitacion, error) {
	var out []model.AsignacionHabitacion
	for _, a := range r.asignaciones {
		if a.Activa {
			copia := *a
			copia.Huesped = r.huespedes[a.HuespedID]
			out = append(out, copia)
		}
	}
	return out, nil
}

func (r *stubAlojamientoRepo) UpdateAsignacion(_ context.Context, a *model.AsignacionHabitacion) error {
	r.asignaciones[a.ID] = a
	return nil
}

func (r *stubAlojamientoRepo) CreateReserva(_ context.Context, rsv *model.ReservaHabitacion) error {
	if rsv.ID == uuid.Nil {
		rsv.ID = uuid.New()
	}
	r.reservas[rsv.ID] = rsv
	return nil
}

func (r *stubAlojamientoRepo) FindReservaByID(_ context.Context, id uuid.UUID) (*model.ReservaHabitacion, error) {
	rsv, ok := r.reservas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *rsv
	copia.Huesped = r.huespedes[rsv.HuespedID]
	if h, ok := r.habitaciones[rsv.HabitacionID]; ok {
		copia.Habitacion = h
	}
	return &copia, nil
}

func (r *stubAlojamientoRepo) ListReservasSolapadas(_ context.Context, habitacionID uuid.UUID, inicio, fin interface{}) ([]model.ReservaHabitacion, error) {
	desde := inicio.(time.Time)
	hasta := fin.(time.Time)
	var out []model.ReservaHabitacion
	for _, rsv := range r.reservas {
		if rsv.HabitacionID != habitacionID || rsv.Estado == model.ReservaCancelada {
			continue
		}
		if rsv.FechaInicio.Before(hasta) && desde.Before(rsv.FechaFin) {
			out = append(out, *rsv)
		}
	}
	return out, nil
}

func (r *stubAlojamientoRepo) ListReservas(_ context.Context, habitacionID *uuid.UUID, estado string) ([]model.ReservaHabitacion, error) {
	var out []model.ReservaHabitacion
	for _, rsv := range r.reservas {
		if habitacionID != nil && rsv.HabitacionID != *habitacionID {
			continue
		}
		if estado != "" && rsv.Estado != estado {
			continue
		}
		out = append(out, *rsv)
	}
	return out, nil
}

func (r *stubAlojamientoRepo) UpdateReserva(_ context.Context, rsv *model.ReservaHabitacion) error {
	r.reservas[rsv.ID] = rsv
	return nil
}

func (r *stubAlojamientoRepo) CreateVentaAlojamientoTx(_ *gorm.DB, v *model.VentaAlojamiento) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r *stubAlojamientoRepo) ListVentasAlojamiento(_ context.Context, historialID *uuid.UUID) ([]model.VentaAlojamiento, error) {
	var out []model.VentaAlojamiento
	for _, v := range r.ventas {
		if historialID != nil && v.HistorialID != *historialID {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *stubAlojamientoRepo) DB() *gorm.DB { return nil }

// ── Fixture ──────────────────────────────────────────────────────────────────

type alojamientoFixture struct {
	svc       AlojamientoService
	cajaSvc   CajaService
	repo      *stubAlojamientoRepo
	cajaRepo  *stubCajaRepo
	piso      *model.PisoZona
	usuarioID uuid.UUID
}

func newAlojamientoFixture(t *testing.T) *alojamientoFixture {
	t.Helper()
	productos := newStubProductoRepo()
	ubicaciones := newStubUbicacionRepo()
	ubicaciones.add(model.UbicacionSalaVenta, "SALA_VENTA")
	stock := newStubStockRepo(productos)
	cajaRepo := newStubCajaRepo(productos)
	repo := newStubAlojamientoRepo()

	cajaSvc := NewCajaService(cajaRepo, stock, ubicaciones, productos)
	piso := &model.PisoZona{Nombre: "Piso 1", Orden: 1}
	require.NoError(t, repo.CreatePiso(context.Background(), piso))

	return &alojamientoFixture{
		svc:       NewAlojamientoService(repo, cajaRepo, cajaSvc),
		cajaSvc:   cajaSvc,
		repo:      repo,
		cajaRepo:  cajaRepo,
		piso:      piso,
		usuarioID: uuid.New(),
	}
}

func (f *alojamientoFixture) habitacion(t *testing.T, nombre string, x, y, ancho, alto int) *dto.HabitacionResponse {
	t.Helper()
	h, err := f.svc.CrearHabitacion(context.Background(), dto.CrearHabitacionRequest{
		PisoID: f.piso.ID, Nombre: nombre, X: x, Y: y, Ancho: ancho, Alto: alto,
	})
	require.NoError(t, err)
	return h
}

func (f *alojamientoFixture) huesped(t *testing.T, nombre, documento string) *dto.HuespedResponse {
	t.Helper()
	h, err := f.svc.CrearHuesped(context.Background(), dto.CrearHuespedRequest{Nombre: nombre, Documento: documento})
	require.NoError(t, err)
	return h
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestHayColision(t *testing.T) {
	// Overlapping rectangles collide.
	assert.True(t, hayColision(0, 0, 4, 4, 2, 2, 4, 4))
	// One containing the other collides.
	assert.True(t, hayColision(0, 0, 10, 10, 3, 3, 2, 2))
	// Disjoint rectangles don't.
	assert.False(t, hayColision(0, 0, 2, 2, 5, 5, 2, 2))
	// Touching edges don't collide.
	assert.False(t, hayColision(0, 0, 4, 4, 4, 0, 4, 4))
	assert.False(t, hayColision(0, 0, 4, 4, 0, 4, 4, 4))
}

func TestCrearHabitacionSolapada(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)

	_, err := f.svc.CrearHabitacion(ctx, dto.CrearHabitacionRequest{
		PisoID: f.piso.ID, Nombre: "Habitacion 102", X: 2, Y: 2, Ancho: 4, Alto: 4,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "la habitacion se solapa con Habitacion 101")
	assert.Equal(t, 409, statusOf(t, err))

	// Adjacent (edge-touching) placement is fine.
	_, err = f.svc.CrearHabitacion(ctx, dto.CrearHabitacionRequest{
		PisoID: f.piso.ID, Nombre: "Habitacion 103", X: 4, Y: 0, Ancho: 4, Alto: 4,
	})
	require.NoError(t, err)

	// PermitirSolape skips the check entirely.
	_, err = f.svc.CrearHabitacion(ctx, dto.CrearHabitacionRequest{
		PisoID: f.piso.ID, Nombre: "Habitacion 104", X: 1, Y: 1, Ancho: 2, Alto: 2,
		PermitirSolape: true,
	})
	require.NoError(t, err)
}

func TestActualizarHabitacionVerificaColision(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	h2 := f.habitacion(t, "Habitacion 102", 10, 0, 4, 4)

	nuevoX := 2
	_, err := f.svc.ActualizarHabitacion(ctx, uuid.MustParse(h2.ID), dto.ActualizarHabitacionRequest{X: &nuevoX})
	require.Error(t, err)
	assert.EqualError(t, err, "la habitacion se solapa con Habitacion 101")

	// Moving a room never collides with itself.
	nuevoX = 11
	_, err = f.svc.ActualizarHabitacion(ctx, uuid.MustParse(h2.ID), dto.ActualizarHabitacionRequest{X: &nuevoX})
	require.NoError(t, err)
}

func TestCrearCamaCodigoDuplicado(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	h := f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	habID := uuid.MustParse(h.ID)

	resp, err := f.svc.CrearCama(ctx, habID, dto.CrearCamaRequest{Codigo: "A"})
	require.NoError(t, err)
	require.Len(t, resp.Camas, 1)
	assert.Equal(t, "INDIVIDUAL", resp.Camas[0].Tipo)

	_, err = f.svc.CrearCama(ctx, habID, dto.CrearCamaRequest{Codigo: "A"})
	require.Error(t, err)
	assert.EqualError(t, err, "ya existe una cama A en la habitacion")
	assert.Equal(t, 409, statusOf(t, err))
}

func TestAsignarCamaOcupada(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	h := f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	habID := uuid.MustParse(h.ID)
	resp, err := f.svc.CrearCama(ctx, habID, dto.CrearCamaRequest{Codigo: "A"})
	require.NoError(t, err)
	camaID := uuid.MustParse(resp.Camas[0].ID)

	huesped1 := f.huesped(t, "Ana Rojas", "11111111-1")
	huesped2 := f.huesped(t, "Pedro Soto", "22222222-2")

	asignacion, err := f.svc.AsignarCama(ctx, dto.AsignarCamaRequest{
		CamaID: camaID, HuespedID: uuid.MustParse(huesped1.ID), FechaInicio: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, asignacion.Activa)
	assert.Equal(t, "Ana Rojas", asignacion.Huesped)

	_, err = f.svc.AsignarCama(ctx, dto.AsignarCamaRequest{
		CamaID: camaID, HuespedID: uuid.MustParse(huesped2.ID), FechaInicio: time.Now(),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "la cama ya esta ocupada")
	assert.Equal(t, 409, statusOf(t, err))
}

func TestLiberarCama(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	h := f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	habID := uuid.MustParse(h.ID)
	resp, err := f.svc.CrearCama(ctx, habID, dto.CrearCamaRequest{Codigo: "A"})
	require.NoError(t, err)
	camaID := uuid.MustParse(resp.Camas[0].ID)

	huesped := f.huesped(t, "Ana Rojas", "11111111-1")
	asignacion, err := f.svc.AsignarCama(ctx, dto.AsignarCamaRequest{
		CamaID: camaID, HuespedID: uuid.MustParse(huesped.ID), FechaInicio: time.Now(),
	})
	require.NoError(t, err)

	liberada, err := f.svc.LiberarCama(ctx, uuid.MustParse(asignacion.ID))
	require.NoError(t, err)
	assert.False(t, liberada.Activa)
	require.NotNil(t, liberada.FechaFin)

	_, err = f.svc.LiberarCama(ctx, uuid.MustParse(asignacion.ID))
	require.Error(t, err)
	assert.EqualError(t, err, "la asignacion ya fue liberada")

	// The bed is free for the next guest.
	otro := f.huesped(t, "Pedro Soto", "22222222-2")
	_, err = f.svc.AsignarCama(ctx, dto.AsignarCamaRequest{
		CamaID: camaID, HuespedID: uuid.MustParse(otro.ID), FechaInicio: time.Now(),
	})
	require.NoError(t, err)
}

func TestCrearHuespedDocumentoDuplicado(t *testing.T) {
	f := newAlojamientoFixture(t)

	f.huesped(t, "Ana Rojas", "11111111-1")
	_, err := f.svc.CrearHuesped(context.Background(), dto.CrearHuespedRequest{
		Nombre: "Otra Ana", Documento: "11111111-1",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "ya existe un huesped con documento 11111111-1")
	assert.Equal(t, 409, statusOf(t, err))
}

func TestCrearReservaSolapada(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	h := f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	habID := uuid.MustParse(h.ID)
	huesped := f.huesped(t, "Ana Rojas", "11111111-1")
	huespedID := uuid.MustParse(huesped.ID)

	inicio := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	fin := inicio.AddDate(0, 0, 3)

	rsv, err := f.svc.CrearReserva(ctx, dto.CrearReservaRequest{
		HabitacionID: habID, HuespedID: huespedID, FechaInicio: inicio, FechaFin: fin,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReservaPendiente, rsv.Estado)

	// Any intersecting range is rejected.
	_, err = f.svc.CrearReserva(ctx, dto.CrearReservaRequest{
		HabitacionID: habID, HuespedID: huespedID,
		FechaInicio: inicio.AddDate(0, 0, 1), FechaFin: fin.AddDate(0, 0, 2),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "la habitacion ya tiene una reserva en ese rango")
	assert.Equal(t, 409, statusOf(t, err))

	// Back-to-back ranges are fine: checkout day equals next check-in.
	_, err = f.svc.CrearReserva(ctx, dto.CrearReservaRequest{
		HabitacionID: habID, HuespedID: huespedID, FechaInicio: fin, FechaFin: fin.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
}

func TestCancelarReservaLiberaElRango(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	h := f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	habID := uuid.MustParse(h.ID)
	huesped := f.huesped(t, "Ana Rojas", "11111111-1")
	huespedID := uuid.MustParse(huesped.ID)

	inicio := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	fin := inicio.AddDate(0, 0, 3)

	rsv, err := f.svc.CrearReserva(ctx, dto.CrearReservaRequest{
		HabitacionID: habID, HuespedID: huespedID, FechaInicio: inicio, FechaFin: fin,
	})
	require.NoError(t, err)

	cancelada, err := f.svc.CancelarReserva(ctx, uuid.MustParse(rsv.ID))
	require.NoError(t, err)
	assert.Equal(t, model.ReservaCancelada, cancelada.Estado)

	_, err = f.svc.CrearReserva(ctx, dto.CrearReservaRequest{
		HabitacionID: habID, HuespedID: huespedID, FechaInicio: inicio, FechaFin: fin,
	})
	require.NoError(t, err)
}

func TestConfirmarReservaSoloPendiente(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	h := f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	huesped := f.huesped(t, "Ana Rojas", "11111111-1")

	inicio := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	rsv, err := f.svc.CrearReserva(ctx, dto.CrearReservaRequest{
		HabitacionID: uuid.MustParse(h.ID),
		HuespedID:    uuid.MustParse(huesped.ID),
		FechaInicio:  inicio,
		FechaFin:     inicio.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	id := uuid.MustParse(rsv.ID)
	confirmada, err := f.svc.ConfirmarReserva(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ReservaConfirmada, confirmada.Estado)

	_, err = f.svc.ConfirmarReserva(ctx, id)
	require.Error(t, err)
	assert.EqualError(t, err, "solo una reserva PENDIENTE puede confirmarse")
	assert.Equal(t, 409, statusOf(t, err))
}

func TestRegistrarVentaAlojamiento(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	huesped := f.huesped(t, "Ana Rojas", "11111111-1")
	huespedID := uuid.MustParse(huesped.ID)

	// Without an open shift the charge is rejected.
	_, err := f.svc.RegistrarVentaAlojamiento(ctx, f.usuarioID, dto.RegistrarVentaAlojamientoRequest{
		HuespedID: huespedID, Monto: decimal.NewFromInt(15000), MedioPago: model.PagoEfectivo,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "el usuario no tiene una caja abierta")

	_, err = f.cajaSvc.AbrirCaja(ctx, f.usuarioID, dto.AbrirCajaRequest{MontoInicial: decimal.Zero})
	require.NoError(t, err)

	venta, err := f.svc.RegistrarVentaAlojamiento(ctx, f.usuarioID, dto.RegistrarVentaAlojamientoRequest{
		HuespedID: huespedID, Monto: decimal.NewFromInt(15000), MedioPago: model.PagoEfectivo,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Rojas", venta.Huesped)
	assert.True(t, venta.Monto.Equal(decimal.NewFromInt(15000)))

	// The shift accumulated the charge.
	actual, err := f.cajaSvc.CajaActual(ctx, f.usuarioID)
	require.NoError(t, err)
	assert.True(t, actual.TotalVentas.Equal(decimal.NewFromInt(15000)))
	assert.True(t, actual.TotalEfectivo.Equal(decimal.NewFromInt(15000)))
}

func TestRegistrarVentaAlojamientoMontoInvalido(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	huesped := f.huesped(t, "Ana Rojas", "11111111-1")

	_, err := f.svc.RegistrarVentaAlojamiento(ctx, f.usuarioID, dto.RegistrarVentaAlojamientoRequest{
		HuespedID: uuid.MustParse(huesped.ID), Monto: decimal.Zero, MedioPago: model.PagoEfectivo,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "el monto debe ser mayor a cero")
	assert.Equal(t, 400, statusOf(t, err))
}

func TestEliminarCamaConAsignacionActiva(t *testing.T) {
	f := newAlojamientoFixture(t)
	ctx := context.Background()

	h := f.habitacion(t, "Habitacion 101", 0, 0, 4, 4)
	habID := uuid.MustParse(h.ID)
	resp, err := f.svc.CrearCama(ctx, habID, dto.CrearCamaRequest{Codigo: "A"})
	require.NoError(t, err)
	camaID := uuid.MustParse(resp.Camas[0].ID)

	huesped := f.huesped(t, "Ana Rojas", "11111111-1")
	asignacion, err := f.svc.AsignarCama(ctx, dto.AsignarCamaRequest{
		CamaID: camaID, HuespedID: uuid.MustParse(huesped.ID), FechaInicio: time.Now(),
	})
	require.NoError(t, err)

	err = f.svc.EliminarCama(ctx, habID, camaID)
	require.Error(t, err)
	assert.EqualError(t, err, "la cama tiene una asignacion activa")
	assert.Equal(t, 409, statusOf(t, err))

	_, err = f.svc.LiberarCama(ctx, uuid.MustParse(asignacion.ID))
	require.NoError(t, err)
	require.NoError(t, f.svc.EliminarCama(ctx, habID, camaID))
}
