package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventarioService interface {
	RegistrarIngreso(ctx context.Context, usuarioID uuid.UUID, req dto.IngresoRequest) (*dto.MovimientoResponse, error)
	RegistrarAjuste(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteRequest) (*dto.MovimientoResponse, error)
	RegistrarTraspaso(ctx context.Context, usuarioID uuid.UUID, req dto.TraspasoRequest) ([]dto.MovimientoResponse, error)
	RegistrarConversion(ctx context.Context, usuarioID uuid.UUID, req dto.ConversionRequest) ([]dto.MovimientoResponse, error)

	ConsultarStock(ctx context.Context, filter dto.StockFilter) ([]dto.StockResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)

	CrearDocumento(ctx context.Context, usuarioID uuid.UUID, req dto.CrearDocumentoRequest) (*dto.DocumentoResponse, error)
	ConfirmarDocumento(ctx context.Context, usuarioID, id uuid.UUID) (*dto.DocumentoResponse, error)
	AnularDocumento(ctx context.Context, id uuid.UUID) (*dto.DocumentoResponse, error)
	ObtenerDocumento(ctx context.Context, id uuid.UUID) (*dto.DocumentoResponse, error)
	ListarDocumentos(ctx context.Context, limit int) ([]dto.DocumentoResponse, error)

	// VerificarDisponibleTx locks a stock row and rejects with Conflict
	// when the available quantity is below the required one.
	VerificarDisponibleTx(tx *gorm.DB, productoID, ubicacionID uuid.UUID, requerido int, nombreProducto string) error
	// DescontarVentaTx runs inside the sale-confirmation transaction: locks
	// the stock row, verifies availability and appends the SALIDA ledger row.
	DescontarVentaTx(tx *gorm.DB, ventaID, usuarioID, productoID, ubicacionID uuid.UUID, cantidad int, nombreProducto string) error
}

type inventarioService struct {
	repo          repository.StockRepository
	productoRepo  repository.ProductoRepository
	ubicacionRepo repository.UbicacionRepository
}

func NewInventarioService(
	repo repository.StockRepository,
	productoRepo repository.ProductoRepository,
	ubicacionRepo repository.UbicacionRepository,
) InventarioService {
	return &inventarioService{repo: repo, productoRepo: productoRepo, ubicacionRepo: ubicacionRepo}
}

func (s *inventarioService) resolverProducto(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	if !p.Activo {
		return nil, apierror.BadRequest("producto " + p.Nombre + " esta inactivo")
	}
	return p, nil
}

func (s *inventarioService) resolverUbicacion(ctx context.Context, id uuid.UUID) (*model.Ubicacion, error) {
	u, err := s.ubicacionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("ubicacion no encontrada")
		}
		return nil, err
	}
	if !u.Activa {
		return nil, apierror.BadRequest("ubicacion " + u.Nombre + " esta inactiva")
	}
	return u, nil
}

// ── Movimientos simples ──────────────────────────────────────────────────────

func (s *inventarioService) RegistrarIngreso(ctx context.Context, usuarioID uuid.UUID, req dto.IngresoRequest) (*dto.MovimientoResponse, error) {
	p, err := s.resolverProducto(ctx, req.ProductoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolverUbicacion(ctx, req.UbicacionID); err != nil {
		return nil, err
	}

	altera := &model.Altera{
		ProductoID:  req.ProductoID,
		Tipo:        model.AlteraIngreso,
		Cantidad:    req.Cantidad,
		UbicacionID: &req.UbicacionID,
		UsuarioID:   usuarioID,
		Motivo:      req.Motivo,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AddStockTx(tx, req.ProductoID, req.UbicacionID, req.Cantidad); err != nil {
			return err
		}
		return s.repo.CreateAlteraTx(tx, altera)
	})
	if err != nil {
		return nil, err
	}
	resp := alteraToResponse(altera, p.Nombre)
	return &resp, nil
}

func (s *inventarioService) RegistrarAjuste(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteRequest) (*dto.MovimientoResponse, error) {
	if req.Cantidad == 0 {
		return nil, apierror.BadRequest("el ajuste no puede ser cero")
	}
	p, err := s.resolverProducto(ctx, req.ProductoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolverUbicacion(ctx, req.UbicacionID); err != nil {
		return nil, err
	}

	altera := &model.Altera{
		ProductoID:  req.ProductoID,
		Tipo:        model.AlteraAjuste,
		Cantidad:    req.Cantidad,
		UbicacionID: &req.UbicacionID,
		UsuarioID:   usuarioID,
		Motivo:      &req.Motivo,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.Cantidad < 0 {
			if err := s.verificarDisponibleTx(tx, p, req.UbicacionID, -req.Cantidad); err != nil {
				return err
			}
		}
		if err := s.repo.AddStockTx(tx, req.ProductoID, req.UbicacionID, req.Cantidad); err != nil {
			return err
		}
		return s.repo.CreateAlteraTx(tx, altera)
	})
	if err != nil {
		return nil, err
	}
	resp := alteraToResponse(altera, p.Nombre)
	return &resp, nil
}

func (s *inventarioService) RegistrarTraspaso(ctx context.Context, usuarioID uuid.UUID, req dto.TraspasoRequest) ([]dto.MovimientoResponse, error) {
	if req.OrigenID == req.DestinoID {
		return nil, apierror.BadRequest("origen y destino no pueden ser la misma ubicacion")
	}
	p, err := s.resolverProducto(ctx, req.ProductoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolverUbicacion(ctx, req.OrigenID); err != nil {
		return nil, err
	}
	if _, err := s.resolverUbicacion(ctx, req.DestinoID); err != nil {
		return nil, err
	}

	ref := uuid.New()
	salida := &model.Altera{
		ProductoID:   req.ProductoID,
		Tipo:         model.AlteraTraspaso,
		Cantidad:     -req.Cantidad,
		UbicacionID:  &req.OrigenID,
		OrigenID:     &req.OrigenID,
		DestinoID:    &req.DestinoID,
		UsuarioID:    usuarioID,
		Motivo:       req.Motivo,
		DocumentoRef: &ref,
	}
	entrada := &model.Altera{
		ProductoID:   req.ProductoID,
		Tipo:         model.AlteraTraspaso,
		Cantidad:     req.Cantidad,
		UbicacionID:  &req.DestinoID,
		OrigenID:     &req.OrigenID,
		DestinoID:    &req.DestinoID,
		UsuarioID:    usuarioID,
		Motivo:       req.Motivo,
		DocumentoRef: &ref,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.verificarDisponibleTx(tx, p, req.OrigenID, req.Cantidad); err != nil {
			return err
		}
		if err := s.repo.AddStockTx(tx, req.ProductoID, req.OrigenID, -req.Cantidad); err != nil {
			return err
		}
		if err := s.repo.AddStockTx(tx, req.ProductoID, req.DestinoID, req.Cantidad); err != nil {
			return err
		}
		if err := s.repo.CreateAlteraTx(tx, salida); err != nil {
			return err
		}
		return s.repo.CreateAlteraTx(tx, entrada)
	})
	if err != nil {
		return nil, err
	}
	return []dto.MovimientoResponse{
		alteraToResponse(salida, p.Nombre),
		alteraToResponse(entrada, p.Nombre),
	}, nil
}

func (s *inventarioService) RegistrarConversion(ctx context.Context, usuarioID uuid.UUID, req dto.ConversionRequest) ([]dto.MovimientoResponse, error) {
	if req.ProductoOrigenID == req.ProductoDestinoID {
		return nil, apierror.BadRequest("origen y destino no pueden ser el mismo producto")
	}
	origen, err := s.resolverProducto(ctx, req.ProductoOrigenID)
	if err != nil {
		return nil, err
	}
	destino, err := s.resolverProducto(ctx, req.ProductoDestinoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolverUbicacion(ctx, req.UbicacionID); err != nil {
		return nil, err
	}

	ref := uuid.New()
	salida := &model.Altera{
		ProductoID:   req.ProductoOrigenID,
		Tipo:         model.AlteraConversion,
		Cantidad:     -req.CantidadOrigen,
		UbicacionID:  &req.UbicacionID,
		UsuarioID:    usuarioID,
		Motivo:       req.Motivo,
		DocumentoRef: &ref,
	}
	entrada := &model.Altera{
		ProductoID:   req.ProductoDestinoID,
		Tipo:         model.AlteraConversion,
		Cantidad:     req.CantidadDestino,
		UbicacionID:  &req.UbicacionID,
		UsuarioID:    usuarioID,
		Motivo:       req.Motivo,
		DocumentoRef: &ref,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.verificarDisponibleTx(tx, origen, req.UbicacionID, req.CantidadOrigen); err != nil {
			return err
		}
		if err := s.repo.AddStockTx(tx, req.ProductoOrigenID, req.UbicacionID, -req.CantidadOrigen); err != nil {
			return err
		}
		if err := s.repo.AddStockTx(tx, req.ProductoDestinoID, req.UbicacionID, req.CantidadDestino); err != nil {
			return err
		}
		if err := s.repo.CreateAlteraTx(tx, salida); err != nil {
			return err
		}
		return s.repo.CreateAlteraTx(tx, entrada)
	})
	if err != nil {
		return nil, err
	}
	return []dto.MovimientoResponse{
		alteraToResponse(salida, origen.Nombre),
		alteraToResponse(entrada, destino.Nombre),
	}, nil
}

// verificarDisponibleTx locks the stock row and rejects when the available
// quantity is below the required one. The error names the product so the
// caller can surface which line failed.
func (s *inventarioService) verificarDisponibleTx(tx *gorm.DB, p *model.Producto, ubicacionID uuid.UUID, requerido int) error {
	return s.VerificarDisponibleTx(tx, p.ID, ubicacionID, requerido, p.Nombre)
}

func (s *inventarioService) VerificarDisponibleTx(tx *gorm.DB, productoID, ubicacionID uuid.UUID, requerido int, nombreProducto string) error {
	stock, err := s.repo.FindStockForUpdateTx(tx, productoID, ubicacionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Conflict(fmt.Sprintf("stock insuficiente de %s: disponible 0, requerido %d", nombreProducto, requerido))
		}
		return err
	}
	if stock.Cantidad < requerido {
		return apierror.Conflict(fmt.Sprintf("stock insuficiente de %s: disponible %d, requerido %d", nombreProducto, stock.Cantidad, requerido))
	}
	return nil
}

func (s *inventarioService) DescontarVentaTx(tx *gorm.DB, ventaID, usuarioID, productoID, ubicacionID uuid.UUID, cantidad int, nombreProducto string) error {
	stock, err := s.repo.FindStockForUpdateTx(tx, productoID, ubicacionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Conflict(fmt.Sprintf("stock insuficiente de %s: disponible 0, requerido %d", nombreProducto, cantidad))
		}
		return err
	}
	if stock.Cantidad < cantidad {
		return apierror.Conflict(fmt.Sprintf("stock insuficiente de %s: disponible %d, requerido %d", nombreProducto, stock.Cantidad, cantidad))
	}
	if err := s.repo.AddStockTx(tx, productoID, ubicacionID, -cantidad); err != nil {
		return err
	}
	return s.repo.CreateAlteraTx(tx, &model.Altera{
		ProductoID:  productoID,
		Tipo:        model.AlteraSalida,
		Cantidad:    -cantidad,
		UbicacionID: &ubicacionID,
		UsuarioID:   usuarioID,
		VentaID:     &ventaID,
	})
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *inventarioService) ConsultarStock(ctx context.Context, filter dto.StockFilter) ([]dto.StockResponse, error) {
	rows, err := s.repo.ListStock(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(rows))
	for i := range rows {
		r := rows[i]
		resp := dto.StockResponse{
			ProductoID:  r.ProductoID.String(),
			UbicacionID: r.UbicacionID.String(),
			Cantidad:    r.Cantidad,
		}
		if r.Producto != nil {
			resp.CodigoInterno = r.Producto.CodigoInterno
			resp.Nombre = r.Producto.Nombre
		}
		if r.Ubicacion != nil {
			resp.Ubicacion = r.Ubicacion.Nombre
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	alteras, total, err := s.repo.ListAlteras(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(alteras))
	for i := range alteras {
		nombre := ""
		if alteras[i].Producto != nil {
			nombre = alteras[i].Producto.Nombre
		}
		data = append(data, alteraToResponse(&alteras[i], nombre))
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Documentos ───────────────────────────────────────────────────────────────

func (s *inventarioService) CrearDocumento(ctx context.Context, usuarioID uuid.UUID, req dto.CrearDocumentoRequest) (*dto.DocumentoResponse, error) {
	switch req.Tipo {
	case model.AlteraIngreso:
		if req.UbicacionID == nil {
			return nil, apierror.BadRequest("un documento INGRESO requiere ubicacion_id")
		}
		if _, err := s.resolverUbicacion(ctx, *req.UbicacionID); err != nil {
			return nil, err
		}
	case model.AlteraTraspaso:
		if req.OrigenID == nil || req.DestinoID == nil {
			return nil, apierror.BadRequest("un documento TRASPASO requiere origen_id y destino_id")
		}
		if *req.OrigenID == *req.DestinoID {
			return nil, apierror.BadRequest("origen y destino no pueden ser la misma ubicacion")
		}
		if _, err := s.resolverUbicacion(ctx, *req.OrigenID); err != nil {
			return nil, err
		}
		if _, err := s.resolverUbicacion(ctx, *req.DestinoID); err != nil {
			return nil, err
		}
	}

	doc := &model.InventarioDocumento{
		Ref:         uuid.New(),
		Tipo:        req.Tipo,
		Estado:      model.DocumentoBorrador,
		UbicacionID: req.UbicacionID,
		OrigenID:    req.OrigenID,
		DestinoID:   req.DestinoID,
		UsuarioID:   usuarioID,
		Observacion: req.Observacion,
	}
	for _, it := range req.Items {
		if _, err := s.resolverProducto(ctx, it.ProductoID); err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, model.InventarioDocumentoItem{
			ProductoID: it.ProductoID,
			Cantidad:   it.Cantidad,
		})
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateDocumentoTx(tx, doc)
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerDocumento(ctx, doc.ID)
}

func (s *inventarioService) ConfirmarDocumento(ctx context.Context, usuarioID, id uuid.UUID) (*dto.DocumentoResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		doc, err := s.repo.FindDocumentoForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("documento no encontrado")
			}
			return err
		}
		if doc.Estado != model.DocumentoBorrador {
			return apierror.Conflict("el documento no esta en estado BORRADOR")
		}

		for _, item := range doc.Items {
			p := item.Producto
			if p == nil {
				loaded, err := s.productoRepo.FindByID(ctx, item.ProductoID)
				if err != nil {
					return err
				}
				p = loaded
			}
			switch doc.Tipo {
			case model.AlteraIngreso:
				if err := s.repo.AddStockTx(tx, item.ProductoID, *doc.UbicacionID, item.Cantidad); err != nil {
					return err
				}
				if err := s.repo.CreateAlteraTx(tx, &model.Altera{
					ProductoID:   item.ProductoID,
					Tipo:         model.AlteraIngreso,
					Cantidad:     item.Cantidad,
					UbicacionID:  doc.UbicacionID,
					UsuarioID:    usuarioID,
					Motivo:       doc.Observacion,
					DocumentoRef: &doc.Ref,
				}); err != nil {
					return err
				}
			case model.AlteraTraspaso:
				if err := s.verificarDisponibleTx(tx, p, *doc.OrigenID, item.Cantidad); err != nil {
					return err
				}
				if err := s.repo.AddStockTx(tx, item.ProductoID, *doc.OrigenID, -item.Cantidad); err != nil {
					return err
				}
				if err := s.repo.AddStockTx(tx, item.ProductoID, *doc.DestinoID, item.Cantidad); err != nil {
					return err
				}
				for _, cantidad := range []int{-item.Cantidad, item.Cantidad} {
					ubicacion := doc.OrigenID
					if cantidad > 0 {
						ubicacion = doc.DestinoID
					}
					if err := s.repo.CreateAlteraTx(tx, &model.Altera{
						ProductoID:   item.ProductoID,
						Tipo:         model.AlteraTraspaso,
						Cantidad:     cantidad,
						UbicacionID:  ubicacion,
						OrigenID:     doc.OrigenID,
						DestinoID:    doc.DestinoID,
						UsuarioID:    usuarioID,
						Motivo:       doc.Observacion,
						DocumentoRef: &doc.Ref,
					}); err != nil {
						return err
					}
				}
			}
		}
		return s.repo.UpdateDocumentoEstadoTx(tx, id, model.DocumentoConfirmado)
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerDocumento(ctx, id)
}

func (s *inventarioService) AnularDocumento(ctx context.Context, id uuid.UUID) (*dto.DocumentoResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		doc, err := s.repo.FindDocumentoForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("documento no encontrado")
			}
			return err
		}
		if doc.Estado != model.DocumentoBorrador {
			return apierror.Conflict("solo un documento BORRADOR puede anularse")
		}
		return s.repo.UpdateDocumentoEstadoTx(tx, id, model.DocumentoAnulado)
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerDocumento(ctx, id)
}

func (s *inventarioService) ObtenerDocumento(ctx context.Context, id uuid.UUID) (*dto.DocumentoResponse, error) {
	doc, err := s.repo.FindDocumentoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("documento no encontrado")
		}
		return nil, err
	}
	resp := documentoToResponse(doc)
	return &resp, nil
}

func (s *inventarioService) ListarDocumentos(ctx context.Context, limit int) ([]dto.DocumentoResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	docs, err := s.repo.ListDocumentos(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentoResponse, 0, len(docs))
	for i := range docs {
		out = append(out, documentoToResponse(&docs[i]))
	}
	return out, nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func alteraToResponse(a *model.Altera, nombreProducto string) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:           a.ID.String(),
		ProductoID:   a.ProductoID.String(),
		Producto:     nombreProducto,
		Tipo:         a.Tipo,
		Cantidad:     a.Cantidad,
		UbicacionID:  uuidPtrToString(a.UbicacionID),
		OrigenID:     uuidPtrToString(a.OrigenID),
		DestinoID:    uuidPtrToString(a.DestinoID),
		UsuarioID:    a.UsuarioID.String(),
		Motivo:       a.Motivo,
		DocumentoRef: uuidPtrToString(a.DocumentoRef),
		VentaID:      uuidPtrToString(a.VentaID),
		Fecha:        a.CreatedAt.Format(time.RFC3339),
	}
}

func documentoToResponse(d *model.InventarioDocumento) dto.DocumentoResponse {
	resp := dto.DocumentoResponse{
		ID:          d.ID.String(),
		Ref:         d.Ref.String(),
		Tipo:        d.Tipo,
		Estado:      d.Estado,
		UbicacionID: uuidPtrToString(d.UbicacionID),
		OrigenID:    uuidPtrToString(d.OrigenID),
		DestinoID:   uuidPtrToString(d.DestinoID),
		UsuarioID:   d.UsuarioID.String(),
		Observacion: d.Observacion,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range d.Items {
		nombre := ""
		if it.Producto != nil {
			nombre = it.Producto.Nombre
		}
		resp.Items = append(resp.Items, dto.DocumentoItemResponse{
			ProductoID: it.ProductoID.String(),
			Producto:   nombre,
			Cantidad:   it.Cantidad,
		})
	}
	return resp
}
