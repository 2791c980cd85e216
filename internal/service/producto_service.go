package service

import (
	"context"
	"errors"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// ConsultarPrecio resolves an active product by barcode for the public
	// price-check endpoint.
	ConsultarPrecio(ctx context.Context, barcode string) (*dto.ConsultaPreciosResponse, error)
}

type productoService struct {
	repo    repository.ProductoRepository
	recetas RecetaService
}

func NewProductoService(repo repository.ProductoRepository, recetas RecetaService) ProductoService {
	return &productoService{repo: repo, recetas: recetas}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByCodigoInterno(ctx, req.CodigoInterno); err == nil {
		return nil, apierror.Conflict("ya existe un producto con codigo " + req.CodigoInterno)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if req.CodigoBarras != nil && *req.CodigoBarras != "" {
		if err := s.validarCodigoBarras(ctx, *req.CodigoBarras, uuid.Nil); err != nil {
			return nil, err
		}
	}
	if req.PrecioCosto.IsNegative() || req.PrecioVenta.IsNegative() {
		return nil, apierror.BadRequest("los precios no pueden ser negativos")
	}
	if req.Tipo == model.TipoComida && req.Rendimiento < 1 {
		return nil, apierror.BadRequest("una comida requiere rendimiento >= 1")
	}

	p := &model.Producto{
		CodigoInterno: req.CodigoInterno,
		CodigoBarras:  req.CodigoBarras,
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		Tipo:          req.Tipo,
		UnidadBase:    req.UnidadBase,
		PrecioCosto:   req.PrecioCosto,
		PrecioVenta:   req.PrecioVenta,
		Rendimiento:   req.Rendimiento,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

// validarCodigoBarras rejects a barcode already held by another product,
// active or not; the unique index spans both.
func (s *productoService) validarCodigoBarras(ctx context.Context, barcode string, propio uuid.UUID) error {
	existente, err := s.repo.FindByCodigoBarras(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existente.ID == propio {
		return nil
	}
	return apierror.Conflict("ya existe un producto con codigo de barras " + barcode)
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}

	costoCambio := false
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CodigoBarras != nil {
		if *req.CodigoBarras != "" {
			if err := s.validarCodigoBarras(ctx, *req.CodigoBarras, p.ID); err != nil {
				return nil, err
			}
		}
		p.CodigoBarras = req.CodigoBarras
	}
	if req.UnidadBase != nil {
		p.UnidadBase = *req.UnidadBase
	}
	if req.PrecioCosto != nil {
		if req.PrecioCosto.IsNegative() {
			return nil, apierror.BadRequest("precio_costo no puede ser negativo")
		}
		if !p.PrecioCosto.Equal(*req.PrecioCosto) {
			costoCambio = true
		}
		p.PrecioCosto = *req.PrecioCosto
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, apierror.BadRequest("precio_venta no puede ser negativo")
		}
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.Rendimiento != nil {
		if p.Tipo == model.TipoComida && *req.Rendimiento < 1 {
			return nil, apierror.BadRequest("una comida requiere rendimiento >= 1")
		}
		p.Rendimiento = *req.Rendimiento
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// An insumo cost change propagates to every comida whose recipe can
	// consume it. Recompute runs in the same request, synchronously.
	if costoCambio && s.recetas != nil && p.Tipo == model.TipoInsumo {
		if err := s.recetas.RecomputarCostosPorProducto(ctx, p.ID); err != nil {
			return nil, err
		}
	}

	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("producto no encontrado")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("producto no encontrado")
		}
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) ConsultarPrecio(ctx context.Context, barcode string) (*dto.ConsultaPreciosResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	return &dto.ConsultaPreciosResponse{
		Nombre:      p.Nombre,
		PrecioVenta: p.PrecioVenta,
		UnidadBase:  p.UnidadBase,
	}, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:            p.ID.String(),
		CodigoInterno: p.CodigoInterno,
		CodigoBarras:  p.CodigoBarras,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Tipo:          p.Tipo,
		UnidadBase:    p.UnidadBase,
		PrecioCosto:   p.PrecioCosto,
		PrecioVenta:   p.PrecioVenta,
		Rendimiento:   p.Rendimiento,
		Activo:        p.Activo,
	}
}
