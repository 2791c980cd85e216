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

type UbicacionService interface {
	Crear(ctx context.Context, req dto.CrearUbicacionRequest) (*model.Ubicacion, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]model.Ubicacion, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Ubicacion, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUbicacionRequest) (*model.Ubicacion, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	// Provisionar creates the default BODEGA and SALA_VENTA locations when
	// none of their type exist. Called once on startup.
	Provisionar(ctx context.Context) error
}

type ubicacionService struct {
	repo  repository.UbicacionRepository
	stock repository.StockRepository
}

func NewUbicacionService(repo repository.UbicacionRepository, stock repository.StockRepository) UbicacionService {
	return &ubicacionService{repo: repo, stock: stock}
}

func (s *ubicacionService) Crear(ctx context.Context, req dto.CrearUbicacionRequest) (*model.Ubicacion, error) {
	if _, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, apierror.Conflict("ya existe una ubicacion con ese nombre")
	}
	u := &model.Ubicacion{
		Nombre: req.Nombre,
		Tipo:   req.Tipo,
		Activa: true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *ubicacionService) Listar(ctx context.Context, incluirInactivas bool) ([]model.Ubicacion, error) {
	return s.repo.List(ctx, incluirInactivas)
}

func (s *ubicacionService) Obtener(ctx context.Context, id uuid.UUID) (*model.Ubicacion, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("ubicacion no encontrada")
		}
		return nil, err
	}
	return u, nil
}

func (s *ubicacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUbicacionRequest) (*model.Ubicacion, error) {
	u, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil && *req.Nombre != u.Nombre {
		if _, err := s.repo.FindByNombre(ctx, *req.Nombre); err == nil {
			return nil, apierror.Conflict("ya existe una ubicacion con ese nombre")
		}
		u.Nombre = *req.Nombre
	}
	if req.Activa != nil {
		u.Activa = *req.Activa
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *ubicacionService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Obtener(ctx, id); err != nil {
		return err
	}
	rows, err := s.stock.ListStockByUbicacion(ctx, id)
	if err != nil {
		return err
	}
	for i := range rows {
		if rows[i].Cantidad > 0 {
			return apierror.Conflict("la ubicacion tiene stock asociado")
		}
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *ubicacionService) Provisionar(ctx context.Context) error {
	for _, nombre := range []string{model.UbicacionBodega, model.UbicacionSalaVenta} {
		if _, err := s.repo.FindByNombre(ctx, nombre); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.repo.Create(ctx, &model.Ubicacion{
			Nombre: nombre,
			Tipo:   nombre,
			Activa: true,
		}); err != nil {
			return err
		}
	}
	return nil
}
