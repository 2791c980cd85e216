package service

import (
	"context"
	"errors"
	"testing"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	svc         VentaService
	cajaSvc     CajaService
	repo        *stubVentaRepo
	cajaRepo    *stubCajaRepo
	productos   *stubProductoRepo
	ubicaciones *stubUbicacionRepo
	stock       *stubStockRepo
	sala        *model.Ubicacion
	usuarioID   uuid.UUID
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	productos := newStubProductoRepo()
	ubicaciones := newStubUbicacionRepo()
	stock := newStubStockRepo(productos)
	cajaRepo := newStubCajaRepo(productos)
	ventaRepo := newStubVentaRepo(productos)

	cajaSvc := NewCajaService(cajaRepo, stock, ubicaciones, productos)
	invSvc := NewInventarioService(stock, productos, ubicaciones)

	f := &ventaFixture{
		svc:         NewVentaService(ventaRepo, productos, ubicaciones, cajaRepo, invSvc, cajaSvc),
		cajaSvc:     cajaSvc,
		repo:        ventaRepo,
		cajaRepo:    cajaRepo,
		productos:   productos,
		ubicaciones: ubicaciones,
		stock:       stock,
		sala:        ubicaciones.add(model.UbicacionSalaVenta, "SALA_VENTA"),
		usuarioID:   uuid.New(),
	}
	return f
}

func (f *ventaFixture) abrirCaja(t *testing.T) {
	t.Helper()
	_, err := f.cajaSvc.AbrirCaja(context.Background(), f.usuarioID, dto.AbrirCajaRequest{MontoInicial: decimal.Zero})
	require.NoError(t, err)
}

func (f *ventaFixture) producto(nombre string, precio int64) *model.Producto {
	return f.productos.add(&model.Producto{
		Nombre:      nombre,
		Tipo:        model.TipoReventa,
		UnidadBase:  "UNIDAD",
		PrecioVenta: decimal.NewFromInt(precio),
		Activo:      true,
	})
}

func TestCrearVentaSinCajaAbierta(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.CrearVenta(context.Background(), f.usuarioID)
	require.Error(t, err)
	assert.EqualError(t, err, "el usuario no tiene una caja abierta")
	assert.Equal(t, 409, statusOf(t, err))
}

func TestAgregarItemAcumulaCantidad(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaEnEdicion, venta.Estado)
	ventaID := uuid.MustParse(venta.ID)

	venta, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{
		ProductoID: cerveza.ID, Cantidad: 2,
	})
	require.NoError(t, err)
	require.Len(t, venta.Items, 1)
	assert.Equal(t, 2, venta.Items[0].Cantidad)

	// Re-adding the same product sums quantities instead of duplicating rows.
	venta, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{
		ProductoID: cerveza.ID, Cantidad: 3,
	})
	require.NoError(t, err)
	require.Len(t, venta.Items, 1)
	assert.Equal(t, 5, venta.Items[0].Cantidad)
	assert.True(t, venta.Items[0].Subtotal.Equal(decimal.NewFromInt(12500)))
	assert.True(t, venta.TotalVenta.Equal(decimal.NewFromInt(12500)))
	assert.Equal(t, 5, venta.CantidadTotal)
}

func TestAgregarItemPropagaErrorDeLectura(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	// A failed item lookup must abort the add, not pass as "no existing
	// item".
	f.repo.findItemErr = errors.New("conexion perdida")
	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{
		ProductoID: cerveza.ID, Cantidad: 2,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "conexion perdida")
}

func TestAgregarItemRefrescaPrecio(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{
		ProductoID: cerveza.ID, Cantidad: 1,
	})
	require.NoError(t, err)

	// A price change between adds re-snapshots the whole line.
	cerveza.PrecioVenta = decimal.NewFromInt(3000)
	venta, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{
		ProductoID: cerveza.ID, Cantidad: 1,
	})
	require.NoError(t, err)
	require.Len(t, venta.Items, 1)
	assert.True(t, venta.Items[0].PrecioUnitario.Equal(decimal.NewFromInt(3000)))
	assert.True(t, venta.Items[0].Subtotal.Equal(decimal.NewFromInt(6000)))
}

func TestActualizarYEliminarItem(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2000)
	papas := f.producto("Papas fritas", 1500)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	venta, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 2})
	require.NoError(t, err)
	venta, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: papas.ID, Cantidad: 1})
	require.NoError(t, err)
	require.Len(t, venta.Items, 2)

	var itemCerveza, itemPapas dto.VentaItemResponse
	for _, it := range venta.Items {
		switch it.ProductoID {
		case cerveza.ID.String():
			itemCerveza = it
		case papas.ID.String():
			itemPapas = it
		}
	}

	venta, err = f.svc.ActualizarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, uuid.MustParse(itemCerveza.ID), dto.ActualizarItemRequest{Cantidad: 4})
	require.NoError(t, err)
	assert.True(t, venta.TotalVenta.Equal(decimal.NewFromInt(9500)))
	assert.Equal(t, 5, venta.CantidadTotal)

	venta, err = f.svc.EliminarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, uuid.MustParse(itemPapas.ID))
	require.NoError(t, err)
	require.Len(t, venta.Items, 1)
	assert.True(t, venta.TotalVenta.Equal(decimal.NewFromInt(8000)))
}

func TestConfirmarVenta(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)
	f.stock.set(cerveza.ID, f.sala.ID, 10)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 4})
	require.NoError(t, err)

	confirmada, err := f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.ConfirmarVentaRequest{MedioPago: model.PagoEfectivo})
	require.NoError(t, err)

	assert.Equal(t, model.VentaConfirmada, confirmada.Estado)
	require.NotNil(t, confirmada.MedioPago)
	assert.Equal(t, model.PagoEfectivo, *confirmada.MedioPago)
	require.NotNil(t, confirmada.FechaConfirmacion)
	assert.True(t, confirmada.TotalVenta.Equal(decimal.NewFromInt(10000)))

	// Stock decremented on the sales floor and a SALIDA ledger row written.
	assert.Equal(t, 6, f.stock.cantidad(cerveza.ID, f.sala.ID))
	require.Len(t, f.stock.alteras, 1)
	salida := f.stock.alteras[0]
	assert.Equal(t, model.AlteraSalida, salida.Tipo)
	assert.Equal(t, -4, salida.Cantidad)
	require.NotNil(t, salida.VentaID)
	assert.Equal(t, ventaID, *salida.VentaID)

	// The session accumulated the sale under its payment method.
	h, err := f.cajaSvc.HistorialAbierto(ctx, f.usuarioID)
	require.NoError(t, err)
	assert.True(t, h.TotalVentas.Equal(decimal.NewFromInt(10000)))
	assert.True(t, h.TotalEfectivo.Equal(decimal.NewFromInt(10000)))
	assert.True(t, h.TotalTarjeta.Equal(decimal.Zero))
}

func TestConfirmarVentaStockInsuficiente(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)
	f.stock.set(cerveza.ID, f.sala.ID, 2)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 5})
	require.NoError(t, err)

	_, err = f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.ConfirmarVentaRequest{MedioPago: model.PagoEfectivo})
	require.Error(t, err)
	assert.EqualError(t, err, "stock insuficiente de Cerveza lata: disponible 2, requerido 5")
	assert.Equal(t, 409, statusOf(t, err))

	// Nothing moved: the sale stays editable and the stock untouched.
	actual, err := f.svc.ObtenerVenta(ctx, f.usuarioID, model.RolVendedor, ventaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaEnEdicion, actual.Estado)
	assert.Equal(t, 2, f.stock.cantidad(cerveza.ID, f.sala.ID))
}

func TestConfirmarVentaSinStockRow(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)
	// No stock row at all for the product on the sales floor.

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 1})
	require.NoError(t, err)

	_, err = f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.ConfirmarVentaRequest{MedioPago: model.PagoEfectivo})
	require.Error(t, err)
	assert.EqualError(t, err, "stock insuficiente de Cerveza lata: disponible 0, requerido 1")
}

func TestConfirmarVentaDosVeces(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)
	f.stock.set(cerveza.ID, f.sala.ID, 10)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 1})
	require.NoError(t, err)
	_, err = f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.ConfirmarVentaRequest{MedioPago: model.PagoEfectivo})
	require.NoError(t, err)

	_, err = f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.ConfirmarVentaRequest{MedioPago: model.PagoEfectivo})
	require.Error(t, err)
	assert.EqualError(t, err, "la venta ya fue confirmada o anulada")
	assert.Equal(t, 409, statusOf(t, err))
	// No double decrement.
	assert.Equal(t, 9, f.stock.cantidad(cerveza.ID, f.sala.ID))
}

func TestConfirmarVentaSinItems(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, uuid.MustParse(venta.ID), dto.ConfirmarVentaRequest{MedioPago: model.PagoEfectivo})
	require.Error(t, err)
	assert.EqualError(t, err, "la venta no tiene items")
	assert.Equal(t, 400, statusOf(t, err))
}

func TestVentaDeOtroUsuario(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	intruso := uuid.New()
	_, err = f.svc.AgregarItem(ctx, intruso, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 1})
	require.Error(t, err)
	assert.EqualError(t, err, "la venta pertenece a otro usuario")
	assert.Equal(t, 403, statusOf(t, err))

	// An admin can operate on anyone's sale.
	_, err = f.svc.AgregarItem(ctx, intruso, model.RolAdmin, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 1})
	require.NoError(t, err)
}

func TestEliminarVentaSoloEnEdicion(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)
	f.stock.set(cerveza.ID, f.sala.ID, 10)

	venta, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	ventaID := uuid.MustParse(venta.ID)

	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 1})
	require.NoError(t, err)
	_, err = f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, ventaID, dto.ConfirmarVentaRequest{MedioPago: model.PagoTarjeta})
	require.NoError(t, err)

	err = f.svc.EliminarVenta(ctx, f.usuarioID, model.RolVendedor, ventaID)
	require.Error(t, err)
	assert.EqualError(t, err, "la venta no esta en edicion")
	assert.Equal(t, 409, statusOf(t, err))

	// A fresh draft can be discarded.
	borrador, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	require.NoError(t, f.svc.EliminarVenta(ctx, f.usuarioID, model.RolVendedor, uuid.MustParse(borrador.ID)))

	_, err = f.svc.ObtenerVenta(ctx, f.usuarioID, model.RolVendedor, uuid.MustParse(borrador.ID))
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestListarVentasPorEstado(t *testing.T) {
	f := newVentaFixture(t)
	f.abrirCaja(t)
	ctx := context.Background()

	cerveza := f.producto("Cerveza lata", 2500)
	f.stock.set(cerveza.ID, f.sala.ID, 10)

	v1, err := f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)
	_, err = f.svc.CrearVenta(ctx, f.usuarioID)
	require.NoError(t, err)

	v1ID := uuid.MustParse(v1.ID)
	_, err = f.svc.AgregarItem(ctx, f.usuarioID, model.RolVendedor, v1ID, dto.AgregarItemRequest{ProductoID: cerveza.ID, Cantidad: 1})
	require.NoError(t, err)
	_, err = f.svc.ConfirmarVenta(ctx, f.usuarioID, model.RolVendedor, v1ID, dto.ConfirmarVentaRequest{MedioPago: model.PagoEfectivo})
	require.NoError(t, err)

	confirmadas, err := f.svc.ListarVentas(ctx, dto.VentaFilter{Estado: model.VentaConfirmada})
	require.NoError(t, err)
	require.Len(t, confirmadas.Data, 1)
	assert.Equal(t, v1.ID, confirmadas.Data[0].ID)

	enEdicion, err := f.svc.ListarVentas(ctx, dto.VentaFilter{Estado: model.VentaEnEdicion})
	require.NoError(t, err)
	assert.Len(t, enEdicion.Data, 1)
}
