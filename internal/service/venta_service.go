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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	CrearVenta(ctx context.Context, usuarioID uuid.UUID) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, usuarioID uuid.UUID, rol string, id uuid.UUID) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)

	AgregarItem(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID uuid.UUID, req dto.AgregarItemRequest) (*dto.VentaResponse, error)
	ActualizarItem(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID, itemID uuid.UUID, req dto.ActualizarItemRequest) (*dto.VentaResponse, error)
	EliminarItem(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID, itemID uuid.UUID) (*dto.VentaResponse, error)

	ConfirmarVenta(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID uuid.UUID, req dto.ConfirmarVentaRequest) (*dto.VentaResponse, error)
	EliminarVenta(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID uuid.UUID) error
}

type ventaService struct {
	repo          repository.VentaRepository
	productoRepo  repository.ProductoRepository
	ubicacionRepo repository.UbicacionRepository
	cajaRepo      repository.CajaRepository
	inventario    InventarioService
	caja          CajaService
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	ubicacionRepo repository.UbicacionRepository,
	cajaRepo repository.CajaRepository,
	inventario InventarioService,
	caja CajaService,
) VentaService {
	return &ventaService{
		repo:          repo,
		productoRepo:  productoRepo,
		ubicacionRepo: ubicacionRepo,
		cajaRepo:      cajaRepo,
		inventario:    inventario,
		caja:          caja,
	}
}

func (s *ventaService) CrearVenta(ctx context.Context, usuarioID uuid.UUID) (*dto.VentaResponse, error) {
	historial, err := s.caja.HistorialAbierto(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	venta := &model.Venta{
		HistorialID:   historial.ID,
		UsuarioID:     usuarioID,
		Estado:        model.VentaEnEdicion,
		TotalVenta:    decimal.Zero,
		CantidadTotal: 0,
	}
	if err := s.repo.Create(ctx, venta); err != nil {
		return nil, err
	}
	return s.obtener(ctx, venta.ID)
}

func (s *ventaService) ObtenerVenta(ctx context.Context, usuarioID uuid.UUID, rol string, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.findVenta(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(venta, usuarioID, rol); err != nil {
		return nil, err
	}
	resp := ventaToResponse(venta)
	return &resp, nil
}

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ventaService) findVenta(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("venta no encontrada")
		}
		return nil, err
	}
	return venta, nil
}

// checkOwnership rejects a vendedor touching another user's sale. Admins can
// operate on any sale.
func checkOwnership(venta *model.Venta, usuarioID uuid.UUID, rol string) error {
	if rol == model.RolAdmin {
		return nil
	}
	if venta.UsuarioID != usuarioID {
		return apierror.Forbidden("la venta pertenece a otro usuario")
	}
	return nil
}

func checkEditable(venta *model.Venta) error {
	if venta.Estado != model.VentaEnEdicion {
		return apierror.Conflict("la venta no esta en edicion")
	}
	return nil
}

// recalcularTotalesTx re-derives TotalVenta and CantidadTotal from the items
// inside the same transaction as the item write.
func (s *ventaService) recalcularTotalesTx(tx *gorm.DB, venta *model.Venta) error {
	items, err := s.repo.ListItemsTx(tx, venta.ID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	cantidad := 0
	for _, it := range items {
		total = total.Add(it.Subtotal)
		cantidad += it.Cantidad
	}
	venta.TotalVenta = total
	venta.CantidadTotal = cantidad
	return s.repo.UpdateTx(tx, venta)
}

func (s *ventaService) AgregarItem(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID uuid.UUID, req dto.AgregarItemRequest) (*dto.VentaResponse, error) {
	venta, err := s.findVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(venta, usuarioID, rol); err != nil {
		return nil, err
	}
	if err := checkEditable(venta); err != nil {
		return nil, err
	}

	p, err := s.productoRepo.FindByID(ctx, req.ProductoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	if !p.Activo {
		return nil, apierror.BadRequest("producto " + p.Nombre + " esta inactivo")
	}

	// Re-adding the same product sums quantities and re-snapshots the price.
	cantidad := req.Cantidad
	existing, err := s.repo.FindItem(ctx, ventaID, req.ProductoID)
	if err == nil {
		cantidad += existing.Cantidad
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.VentaItem{
		VentaID:        ventaID,
		ProductoID:     req.ProductoID,
		Cantidad:       cantidad,
		PrecioUnitario: p.PrecioVenta,
		Subtotal:       p.PrecioVenta.Mul(decimal.NewFromInt(int64(cantidad))),
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpsertItemTx(tx, item); err != nil {
			return err
		}
		return s.recalcularTotalesTx(tx, venta)
	})
	if err != nil {
		return nil, err
	}
	return s.obtener(ctx, ventaID)
}

func (s *ventaService) ActualizarItem(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID, itemID uuid.UUID, req dto.ActualizarItemRequest) (*dto.VentaResponse, error) {
	venta, err := s.findVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(venta, usuarioID, rol); err != nil {
		return nil, err
	}
	if err := checkEditable(venta); err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil || item.VentaID != ventaID {
		return nil, apierror.NotFound("item no encontrado")
	}

	item.Cantidad = req.Cantidad
	item.Subtotal = item.PrecioUnitario.Mul(decimal.NewFromInt(int64(req.Cantidad)))

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpsertItemTx(tx, item); err != nil {
			return err
		}
		return s.recalcularTotalesTx(tx, venta)
	})
	if err != nil {
		return nil, err
	}
	return s.obtener(ctx, ventaID)
}

func (s *ventaService) EliminarItem(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID, itemID uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.findVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(venta, usuarioID, rol); err != nil {
		return nil, err
	}
	if err := checkEditable(venta); err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil || item.VentaID != ventaID {
		return nil, apierror.NotFound("item no encontrado")
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemTx(tx, item.ID); err != nil {
			return err
		}
		return s.recalcularTotalesTx(tx, venta)
	})
	if err != nil {
		return nil, err
	}
	return s.obtener(ctx, ventaID)
}

// ConfirmarVenta serializes competing confirmations with a row lock on the
// sale, then runs a two-pass check-then-commit over the item stock rows:
// pass 1 locks and verifies every quantity, pass 2 decrements and writes the
// SALIDA ledger rows. Either everything commits or nothing does.
func (s *ventaService) ConfirmarVenta(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID uuid.UUID, req dto.ConfirmarVentaRequest) (*dto.VentaResponse, error) {
	sala, err := s.ubicacionRepo.FindByTipo(ctx, model.UbicacionSalaVenta)
	if err != nil {
		return nil, err
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta, err := s.repo.FindByIDForUpdateTx(tx, ventaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("venta no encontrada")
			}
			return err
		}
		if err := checkOwnership(venta, usuarioID, rol); err != nil {
			return err
		}
		if venta.Estado != model.VentaEnEdicion {
			return apierror.Conflict("la venta ya fue confirmada o anulada")
		}

		items, err := s.repo.ListItemsTx(tx, venta.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apierror.BadRequest("la venta no tiene items")
		}

		total := decimal.Zero
		cantidad := 0
		for _, it := range items {
			total = total.Add(it.Subtotal)
			cantidad += it.Cantidad
		}
		if !total.IsPositive() {
			return apierror.BadRequest("el total de la venta debe ser mayor a cero")
		}

		// Pass 1: lock every stock row and verify availability. Fails fast
		// naming the first insufficient product.
		type linea struct {
			productoID uuid.UUID
			nombre     string
			cantidad   int
		}
		lineas := make([]linea, 0, len(items))
		for _, it := range items {
			nombre := it.ProductoID.String()
			if it.Producto != nil {
				nombre = it.Producto.Nombre
			}
			lineas = append(lineas, linea{productoID: it.ProductoID, nombre: nombre, cantidad: it.Cantidad})
		}
		for _, l := range lineas {
			if err := s.inventario.VerificarDisponibleTx(tx, l.productoID, sala.ID, l.cantidad, l.nombre); err != nil {
				return err
			}
		}

		// Pass 2: decrement and append ledger rows.
		for _, l := range lineas {
			if err := s.inventario.DescontarVentaTx(tx, venta.ID, usuarioID, l.productoID, sala.ID, l.cantidad, l.nombre); err != nil {
				return err
			}
		}

		now := time.Now()
		medio := req.MedioPago
		venta.Estado = model.VentaConfirmada
		venta.MedioPago = &medio
		venta.FechaConfirmacion = &now
		venta.TotalVenta = total
		venta.CantidadTotal = cantidad
		if err := s.repo.UpdateTx(tx, venta); err != nil {
			return err
		}

		return s.cajaRepo.AcumularVentaTx(tx, venta.HistorialID, total, medio)
	})
	if err != nil {
		return nil, err
	}
	return s.obtener(ctx, ventaID)
}

func (s *ventaService) EliminarVenta(ctx context.Context, usuarioID uuid.UUID, rol string, ventaID uuid.UUID) error {
	venta, err := s.findVenta(ctx, ventaID)
	if err != nil {
		return err
	}
	if err := checkOwnership(venta, usuarioID, rol); err != nil {
		return err
	}
	if err := checkEditable(venta); err != nil {
		return err
	}
	return s.repo.Delete(ctx, ventaID)
}

func (s *ventaService) obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.findVenta(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ventaToResponse(venta)
	return &resp, nil
}

func ventaToResponse(v *model.Venta) dto.VentaResponse {
	resp := dto.VentaResponse{
		ID:            v.ID.String(),
		HistorialID:   v.HistorialID.String(),
		UsuarioID:     v.UsuarioID.String(),
		Estado:        v.Estado,
		TotalVenta:    v.TotalVenta,
		CantidadTotal: v.CantidadTotal,
		MedioPago:     v.MedioPago,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
	if v.FechaConfirmacion != nil {
		fecha := v.FechaConfirmacion.Format(time.RFC3339)
		resp.FechaConfirmacion = &fecha
	}
	for _, it := range v.Items {
		nombre := ""
		if it.Producto != nil {
			nombre = it.Producto.Nombre
		}
		resp.Items = append(resp.Items, dto.VentaItemResponse{
			ID:             it.ID.String(),
			ProductoID:     it.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return resp
}
