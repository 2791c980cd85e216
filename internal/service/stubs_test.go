package service

// In-memory repository stubs shared by the service tests. DB() returns nil,
// which makes runTx invoke the body directly without a real transaction.

import (
	"context"
	"strings"
	"testing"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// statusOf maps an error to its HTTP status for assertions.
func statusOf(t *testing.T, err error) int {
	t.Helper()
	return apierror.StatusOf(err)
}

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) add(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.add(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Producto, error) {
	var out []model.Producto
	for _, id := range ids {
		if p, ok := r.productos[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) FindByCodigoInterno(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoInterno == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras != nil && *p.CodigoBarras == barcode && p.Activo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) FindByCodigoBarras(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras != nil && *p.CodigoBarras == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListActivos(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) ListByTipo(_ context.Context, tipo string) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Tipo == tipo && p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) UpdatePrecioCostoTx(_ *gorm.DB, id uuid.UUID, costo decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.PrecioCosto = costo
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── UbicacionRepository ──────────────────────────────────────────────────────

type stubUbicacionRepo struct {
	ubicaciones map[uuid.UUID]*model.Ubicacion
}

func newStubUbicacionRepo() *stubUbicacionRepo {
	return &stubUbicacionRepo{ubicaciones: make(map[uuid.UUID]*model.Ubicacion)}
}

func (r *stubUbicacionRepo) add(nombre, tipo string) *model.Ubicacion {
	u := &model.Ubicacion{ID: uuid.New(), Nombre: nombre, Tipo: tipo, Activa: true}
	r.ubicaciones[u.ID] = u
	return u
}

func (r *stubUbicacionRepo) Create(_ context.Context, u *model.Ubicacion) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.ubicaciones[u.ID] = u
	return nil
}

func (r *stubUbicacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ubicacion, error) {
	u, ok := r.ubicaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUbicacionRepo) FindByNombre(_ context.Context, nombre string) (*model.Ubicacion, error) {
	for _, u := range r.ubicaciones {
		if u.Nombre == nombre {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUbicacionRepo) FindByTipo(_ context.Context, tipo string) (*model.Ubicacion, error) {
	for _, u := range r.ubicaciones {
		if u.Tipo == tipo && u.Activa {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUbicacionRepo) List(_ context.Context, incluirInactivas bool) ([]model.Ubicacion, error) {
	var out []model.Ubicacion
	for _, u := range r.ubicaciones {
		if u.Activa || incluirInactivas {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUbicacionRepo) Update(_ context.Context, u *model.Ubicacion) error {
	r.ubicaciones[u.ID] = u
	return nil
}

func (r *stubUbicacionRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.ubicaciones[id]; ok {
		u.Activa = false
	}
	return nil
}

func (r *stubUbicacionRepo) DB() *gorm.DB { return nil }

// ── StockRepository ──────────────────────────────────────────────────────────

type stockKey struct{ producto, ubicacion uuid.UUID }

type stubStockRepo struct {
	stocks     map[stockKey]*model.ProductoStock
	alteras    []model.Altera
	documentos map[uuid.UUID]*model.InventarioDocumento
	// productos lets list methods attach the Producto relation like the
	// real repository's Preload does.
	productos *stubProductoRepo
	// findStockErr, when set, is returned by FindStock to simulate a
	// database failure.
	findStockErr error
}

func newStubStockRepo(productos *stubProductoRepo) *stubStockRepo {
	return &stubStockRepo{
		stocks:     make(map[stockKey]*model.ProductoStock),
		documentos: make(map[uuid.UUID]*model.InventarioDocumento),
		productos:  productos,
	}
}

func (r *stubStockRepo) set(productoID, ubicacionID uuid.UUID, cantidad int) {
	r.stocks[stockKey{productoID, ubicacionID}] = &model.ProductoStock{
		ID:          uuid.New(),
		ProductoID:  productoID,
		UbicacionID: ubicacionID,
		Cantidad:    cantidad,
	}
}

func (r *stubStockRepo) cantidad(productoID, ubicacionID uuid.UUID) int {
	if s, ok := r.stocks[stockKey{productoID, ubicacionID}]; ok {
		return s.Cantidad
	}
	return 0
}

func (r *stubStockRepo) FindStock(_ context.Context, productoID, ubicacionID uuid.UUID) (*model.ProductoStock, error) {
	if r.findStockErr != nil {
		return nil, r.findStockErr
	}
	s, ok := r.stocks[stockKey{productoID, ubicacionID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStockRepo) ListStock(_ context.Context, _ dto.StockFilter) ([]model.ProductoStock, error) {
	var out []model.ProductoStock
	for _, s := range r.stocks {
		row := *s
		if r.productos != nil {
			row.Producto = r.productos.productos[s.ProductoID]
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *stubStockRepo) ListStockByUbicacion(_ context.Context, ubicacionID uuid.UUID) ([]model.ProductoStock, error) {
	var out []model.ProductoStock
	for _, s := range r.stocks {
		if s.UbicacionID != ubicacionID {
			continue
		}
		row := *s
		if r.productos != nil {
			row.Producto = r.productos.productos[s.ProductoID]
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *stubStockRepo) FindStockForUpdateTx(_ *gorm.DB, productoID, ubicacionID uuid.UUID) (*model.ProductoStock, error) {
	return r.FindStock(context.Background(), productoID, ubicacionID)
}

func (r *stubStockRepo) AddStockTx(_ *gorm.DB, productoID, ubicacionID uuid.UUID, delta int) error {
	key := stockKey{productoID, ubicacionID}
	if s, ok := r.stocks[key]; ok {
		s.Cantidad += delta
		return nil
	}
	r.stocks[key] = &model.ProductoStock{
		ID:          uuid.New(),
		ProductoID:  productoID,
		UbicacionID: ubicacionID,
		Cantidad:    delta,
	}
	return nil
}

func (r *stubStockRepo) CreateAlteraTx(_ *gorm.DB, a *model.Altera) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.alteras = append(r.alteras, *a)
	return nil
}

func (r *stubStockRepo) ListAlteras(_ context.Context, filter dto.MovimientoFilter) ([]model.Altera, int64, error) {
	var out []model.Altera
	for _, a := range r.alteras {
		if filter.Tipo != "" && a.Tipo != filter.Tipo {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *stubStockRepo) CreateDocumentoTx(_ *gorm.DB, d *model.InventarioDocumento) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	for i := range d.Items {
		if d.Items[i].ID == uuid.Nil {
			d.Items[i].ID = uuid.New()
		}
		d.Items[i].DocumentoID = d.ID
	}
	d.CreatedAt = time.Now()
	r.documentos[d.ID] = d
	return nil
}

func (r *stubStockRepo) FindDocumentoByID(_ context.Context, id uuid.UUID) (*model.InventarioDocumento, error) {
	d, ok := r.documentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.productos != nil {
		for i := range d.Items {
			d.Items[i].Producto = r.productos.productos[d.Items[i].ProductoID]
		}
	}
	return d, nil
}

func (r *stubStockRepo) FindDocumentoForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.InventarioDocumento, error) {
	return r.FindDocumentoByID(context.Background(), id)
}

func (r *stubStockRepo) ListDocumentos(_ context.Context, _ int) ([]model.InventarioDocumento, error) {
	var out []model.InventarioDocumento
	for _, d := range r.documentos {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubStockRepo) UpdateDocumentoEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	d, ok := r.documentos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Estado = estado
	return nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

// ── CajaRepository ───────────────────────────────────────────────────────────

type stubCajaRepo struct {
	historiales map[uuid.UUID]*model.HistorialCaja
	cajas       map[uuid.UUID]*model.Caja
	snapshots   map[uuid.UUID][]model.StockSesionCaja
	productos   *stubProductoRepo
}

func newStubCajaRepo(productos *stubProductoRepo) *stubCajaRepo {
	return &stubCajaRepo{
		historiales: make(map[uuid.UUID]*model.HistorialCaja),
		cajas:       make(map[uuid.UUID]*model.Caja),
		snapshots:   make(map[uuid.UUID][]model.StockSesionCaja),
		productos:   productos,
	}
}

func (r *stubCajaRepo) abrir(usuarioID uuid.UUID) *model.HistorialCaja {
	h := &model.HistorialCaja{
		ID:            uuid.New(),
		UsuarioID:     usuarioID,
		MontoInicial:  decimal.Zero,
		FechaApertura: time.Now(),
	}
	r.historiales[h.ID] = h
	return h
}

func (r *stubCajaRepo) CreateHistorialTx(_ *gorm.DB, h *model.HistorialCaja) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.historiales[h.ID] = h
	return nil
}

func (r *stubCajaRepo) FindHistorialByID(_ context.Context, id uuid.UUID) (*model.HistorialCaja, error) {
	h, ok := r.historiales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (r *stubCajaRepo) FindHistorialAbierto(_ context.Context, usuarioID uuid.UUID) (*model.HistorialCaja, error) {
	for _, h := range r.historiales {
		if h.UsuarioID == usuarioID && h.FechaCierre == nil {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) FindHistorialAbiertoForUpdateTx(_ *gorm.DB, usuarioID uuid.UUID) (*model.HistorialCaja, error) {
	return r.FindHistorialAbierto(context.Background(), usuarioID)
}

func (r *stubCajaRepo) ListHistoriales(_ context.Context, usuarioID *uuid.UUID) ([]model.HistorialCaja, error) {
	var out []model.HistorialCaja
	for _, h := range r.historiales {
		if usuarioID != nil && h.UsuarioID != *usuarioID {
			continue
		}
		out = append(out, *h)
	}
	return out, nil
}

func (r *stubCajaRepo) UpdateHistorialTx(_ *gorm.DB, h *model.HistorialCaja) error {
	r.historiales[h.ID] = h
	return nil
}

func (r *stubCajaRepo) AcumularVentaTx(_ *gorm.DB, historialID uuid.UUID, total decimal.Decimal, medioPago string) error {
	h, ok := r.historiales[historialID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	h.TotalVentas = h.TotalVentas.Add(total)
	switch medioPago {
	case model.PagoEfectivo:
		h.TotalEfectivo = h.TotalEfectivo.Add(total)
	case model.PagoTarjeta:
		h.TotalTarjeta = h.TotalTarjeta.Add(total)
	}
	return nil
}

func (r *stubCajaRepo) CreateCajaTx(_ *gorm.DB, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *stubCajaRepo) FindCajaByHistorialID(_ context.Context, historialID uuid.UUID) (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.HistorialID == historialID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) CerrarCajaTx(_ *gorm.DB, historialID uuid.UUID) error {
	for _, c := range r.cajas {
		if c.HistorialID == historialID {
			c.Estado = model.CajaCerrada
		}
	}
	return nil
}

func (r *stubCajaRepo) CreateSnapshotTx(_ *gorm.DB, rows []model.StockSesionCaja) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		r.snapshots[rows[i].HistorialID] = append(r.snapshots[rows[i].HistorialID], rows[i])
	}
	return nil
}

func (r *stubCajaRepo) ListSnapshot(_ context.Context, historialID uuid.UUID) ([]model.StockSesionCaja, error) {
	rows := r.snapshots[historialID]
	out := make([]model.StockSesionCaja, len(rows))
	copy(out, rows)
	if r.productos != nil {
		for i := range out {
			out[i].Producto = r.productos.productos[out[i].ProductoID]
		}
	}
	return out, nil
}

func (r *stubCajaRepo) ListSnapshotTx(_ *gorm.DB, historialID uuid.UUID) ([]model.StockSesionCaja, error) {
	return r.ListSnapshot(context.Background(), historialID)
}

func (r *stubCajaRepo) UpdateSnapshotFinalTx(_ *gorm.DB, historialID, productoID uuid.UUID, stockFinal int) error {
	rows := r.snapshots[historialID]
	for i := range rows {
		if rows[i].ProductoID == productoID {
			final := stockFinal
			rows[i].StockFinal = &final
		}
	}
	return nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

// ── VentaRepository ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas    map[uuid.UUID]*model.Venta
	items     map[uuid.UUID]*model.VentaItem
	productos *stubProductoRepo
	// findItemErr, when set, is returned by FindItem to simulate a
	// database failure.
	findItemErr error
}

func newStubVentaRepo(productos *stubProductoRepo) *stubVentaRepo {
	return &stubVentaRepo{
		ventas:    make(map[uuid.UUID]*model.Venta),
		items:     make(map[uuid.UUID]*model.VentaItem),
		productos: productos,
	}
}

func (r *stubVentaRepo) Create(_ context.Context, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *v
	copia.Items = nil
	items, _ := r.ListItemsTx(nil, id)
	copia.Items = items
	return &copia, nil
}

func (r *stubVentaRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) UpdateTx(_ *gorm.DB, v *model.Venta) error {
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ventas, id)
	for itemID, it := range r.items {
		if it.VentaID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *stubVentaRepo) FindItem(_ context.Context, ventaID, productoID uuid.UUID) (*model.VentaItem, error) {
	if r.findItemErr != nil {
		return nil, r.findItemErr
	}
	for _, it := range r.items {
		if it.VentaID == ventaID && it.ProductoID == productoID {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (*model.VentaItem, error) {
	it, ok := r.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (r *stubVentaRepo) ListItemsTx(_ *gorm.DB, ventaID uuid.UUID) ([]model.VentaItem, error) {
	var out []model.VentaItem
	for _, it := range r.items {
		if it.VentaID != ventaID {
			continue
		}
		copia := *it
		if r.productos != nil {
			copia.Producto = r.productos.productos[it.ProductoID]
		}
		out = append(out, copia)
	}
	return out, nil
}

func (r *stubVentaRepo) UpsertItemTx(_ *gorm.DB, item *model.VentaItem) error {
	for _, it := range r.items {
		if it.VentaID == item.VentaID && it.ProductoID == item.ProductoID {
			it.Cantidad = item.Cantidad
			it.PrecioUnitario = item.PrecioUnitario
			it.Subtotal = item.Subtotal
			item.ID = it.ID
			return nil
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	copia := *item
	r.items[item.ID] = &copia
	return nil
}

func (r *stubVentaRepo) DeleteItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	delete(r.items, itemID)
	return nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── RecetaRepository ─────────────────────────────────────────────────────────

type stubRecetaRepo struct {
	grupos     map[uuid.UUID]*model.InsumoGrupo
	grupoItems map[uuid.UUID]*model.InsumoGrupoItem
	recetas    []model.Receta
	productos  *stubProductoRepo
}

func newStubRecetaRepo(productos *stubProductoRepo) *stubRecetaRepo {
	return &stubRecetaRepo{
		grupos:     make(map[uuid.UUID]*model.InsumoGrupo),
		grupoItems: make(map[uuid.UUID]*model.InsumoGrupoItem),
		productos:  productos,
	}
}

func (r *stubRecetaRepo) hydrateGrupo(g *model.InsumoGrupo) *model.InsumoGrupo {
	copia := *g
	copia.Items = nil
	for _, it := range r.grupoItems {
		if it.GrupoID != g.ID {
			continue
		}
		item := *it
		if r.productos != nil {
			item.Producto = r.productos.productos[it.ProductoID]
		}
		copia.Items = append(copia.Items, item)
	}
	return &copia
}

func (r *stubRecetaRepo) CreateGrupo(_ context.Context, g *model.InsumoGrupo) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now()
	r.grupos[g.ID] = g
	return nil
}

func (r *stubRecetaRepo) FindGrupoByID(_ context.Context, id uuid.UUID) (*model.InsumoGrupo, error) {
	g, ok := r.grupos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hydrateGrupo(g), nil
}

func (r *stubRecetaRepo) FindGrupoByNombre(_ context.Context, nombre string) (*model.InsumoGrupo, error) {
	for _, g := range r.grupos {
		if strings.EqualFold(g.Nombre, nombre) {
			return r.hydrateGrupo(g), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRecetaRepo) FindGruposByIDs(_ context.Context, ids []uuid.UUID) ([]model.InsumoGrupo, error) {
	var out []model.InsumoGrupo
	for _, id := range ids {
		if g, ok := r.grupos[id]; ok {
			out = append(out, *r.hydrateGrupo(g))
		}
	}
	return out, nil
}

func (r *stubRecetaRepo) ListGrupos(_ context.Context) ([]model.InsumoGrupo, error) {
	var out []model.InsumoGrupo
	for _, g := range r.grupos {
		out = append(out, *r.hydrateGrupo(g))
	}
	return out, nil
}

func (r *stubRecetaRepo) UpdateGrupo(_ context.Context, g *model.InsumoGrupo) error {
	r.grupos[g.ID] = g
	return nil
}

func (r *stubRecetaRepo) CreateGrupoItem(_ context.Context, item *model.InsumoGrupoItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	r.grupoItems[item.ID] = item
	return nil
}

func (r *stubRecetaRepo) FindGrupoItemByID(_ context.Context, id uuid.UUID) (*model.InsumoGrupoItem, error) {
	it, ok := r.grupoItems[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (r *stubRecetaRepo) UpdateGrupoItem(_ context.Context, item *model.InsumoGrupoItem) error {
	r.grupoItems[item.ID] = item
	return nil
}

func (r *stubRecetaRepo) DeleteGrupoItem(_ context.Context, id uuid.UUID) error {
	delete(r.grupoItems, id)
	return nil
}

func (r *stubRecetaRepo) ReplaceRecetaTx(_ *gorm.DB, comidaID uuid.UUID, items []model.Receta) error {
	var kept []model.Receta
	for _, rec := range r.recetas {
		if rec.ComidaID != comidaID {
			kept = append(kept, rec)
		}
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		kept = append(kept, items[i])
	}
	r.recetas = kept
	return nil
}

func (r *stubRecetaRepo) hydrateReceta(rec model.Receta) model.Receta {
	if g, ok := r.grupos[rec.GrupoID]; ok {
		rec.Grupo = r.hydrateGrupo(g)
	}
	if r.productos != nil {
		rec.Comida = r.productos.productos[rec.ComidaID]
	}
	return rec
}

func (r *stubRecetaRepo) ListRecetasByComida(_ context.Context, comidaID uuid.UUID) ([]model.Receta, error) {
	var out []model.Receta
	for _, rec := range r.recetas {
		if rec.ComidaID == comidaID {
			out = append(out, r.hydrateReceta(rec))
		}
	}
	return out, nil
}

func (r *stubRecetaRepo) ListRecetasByGrupo(_ context.Context, grupoID uuid.UUID) ([]model.Receta, error) {
	var out []model.Receta
	for _, rec := range r.recetas {
		if rec.GrupoID == grupoID {
			out = append(out, r.hydrateReceta(rec))
		}
	}
	return out, nil
}

func (r *stubRecetaRepo) ListRecetasByComidas(_ context.Context, comidaIDs []uuid.UUID) ([]model.Receta, error) {
	wanted := make(map[uuid.UUID]struct{}, len(comidaIDs))
	for _, id := range comidaIDs {
		wanted[id] = struct{}{}
	}
	var out []model.Receta
	for _, rec := range r.recetas {
		if _, ok := wanted[rec.ComidaID]; ok {
			out = append(out, r.hydrateReceta(rec))
		}
	}
	return out, nil
}

func (r *stubRecetaRepo) ListGruposByProducto(_ context.Context, productoID uuid.UUID) ([]model.InsumoGrupo, error) {
	var out []model.InsumoGrupo
	for _, it := range r.grupoItems {
		if it.ProductoID != productoID || !it.Activo {
			continue
		}
		if g, ok := r.grupos[it.GrupoID]; ok && g.Activo {
			out = append(out, *r.hydrateGrupo(g))
		}
	}
	return out, nil
}

func (r *stubRecetaRepo) DB() *gorm.DB { return nil }
